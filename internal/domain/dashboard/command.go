package dashboard

import "errors"

// Command is a dashboard action a visitor can trigger.
type Command string

// Commands
const (
	CmdShowAnalytics     Command = "show-analytics"
	CmdManageUsers       Command = "manage-users"
	CmdShowRegistrations Command = "show-registrations"
	CmdShowSubscriptions Command = "show-subscriptions"
	CmdShowEnquiries     Command = "show-enquiries"
	CmdShowProfile       Command = "show-profile"
	CmdShowBookings      Command = "show-bookings"
	CmdClose             Command = "close"
	CmdDeleteUser        Command = "delete-user"
	CmdUpdateProfile     Command = "update-profile"
)

// ErrUnknownCommand is returned for command names outside the enum.
var ErrUnknownCommand = errors.New("unknown dashboard command")

// panelCommands maps each panel-selecting command to the panel it shows.
var panelCommands = map[Command]Panel{
	CmdShowAnalytics:     PanelAnalytics,
	CmdManageUsers:       PanelUsers,
	CmdShowRegistrations: PanelRegistrations,
	CmdShowSubscriptions: PanelSubscriptions,
	CmdShowEnquiries:     PanelEnquiries,
	CmdShowProfile:       PanelProfile,
	CmdShowBookings:      PanelBookings,
}

// ParseCommand validates a submitted command name.
func ParseCommand(s string) (Command, error) {
	c := Command(s)
	if _, ok := panelCommands[c]; ok {
		return c, nil
	}
	switch c {
	case CmdClose, CmdDeleteUser, CmdUpdateProfile:
		return c, nil
	}
	return "", ErrUnknownCommand
}

// PanelFor returns the panel a selecting command shows.
func (c Command) PanelFor() (Panel, bool) {
	p, ok := panelCommands[c]
	return p, ok
}
