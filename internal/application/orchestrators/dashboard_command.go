package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"serene/internal/domain/dashboard"
	"serene/internal/domain/session"
)

// DashboardCommandInput carries one dashboard action.
type DashboardCommandInput struct {
	VisitorID string
	Session   session.Session
	Command   dashboard.Command
	Username  string // delete-user target
	Email     string // update-profile
	Phone     string // update-profile
}

// DashboardCommandResult is the dashboard state after a command.
type DashboardCommandResult struct {
	View    dashboard.View
	Session session.Session
	Message string
}

// DashboardCommandDeps holds dependencies for DashboardCommand.
type DashboardCommandDeps struct {
	Users    UserStore
	Sessions SessionStore
	Panels   PanelStore
}

type commandHandler func(ctx context.Context, input DashboardCommandInput, deps DashboardCommandDeps, res *DashboardCommandResult) error

// commandHandlers is the single dispatch table for dashboard commands.
var commandHandlers = map[dashboard.Command]commandHandler{
	dashboard.CmdShowAnalytics:     selectPanel,
	dashboard.CmdManageUsers:       selectPanel,
	dashboard.CmdShowRegistrations: selectPanel,
	dashboard.CmdShowSubscriptions: selectPanel,
	dashboard.CmdShowEnquiries:     selectPanel,
	dashboard.CmdShowProfile:       selectPanel,
	dashboard.CmdShowBookings:      selectPanel,
	dashboard.CmdClose:             closePanel,
	dashboard.CmdDeleteUser:        deleteUserCommand,
	dashboard.CmdUpdateProfile:     updateProfileCommand,
}

// ExecuteDashboardCommand dispatches a command and persists the resulting panel.
// PRE: Session is Authenticated
// POST: at most one panel is active; the stored panel matches the returned View
func ExecuteDashboardCommand(ctx context.Context, input DashboardCommandInput, deps DashboardCommandDeps) (DashboardCommandResult, error) {
	if input.Session.State() != session.Authenticated {
		return DashboardCommandResult{}, ErrNotAuthenticated
	}
	handler, ok := commandHandlers[input.Command]
	if !ok {
		return DashboardCommandResult{}, dashboard.ErrUnknownCommand
	}

	stored, err := deps.Panels.Panel(ctx, input.VisitorID)
	if err != nil {
		return DashboardCommandResult{}, fmt.Errorf("load panel: %w", err)
	}
	res := DashboardCommandResult{
		View:    dashboard.Restore(input.Session.Role(), string(stored)),
		Session: input.Session,
	}
	if err := handler(ctx, input, deps, &res); err != nil {
		return DashboardCommandResult{}, err
	}
	if err := deps.Panels.PutPanel(ctx, input.VisitorID, res.View.Active); err != nil {
		return DashboardCommandResult{}, fmt.Errorf("save panel: %w", err)
	}
	slog.Debug("dashboard_event", "command", string(input.Command), "panel", string(res.View.Active))
	return res, nil
}

func selectPanel(_ context.Context, input DashboardCommandInput, _ DashboardCommandDeps, res *DashboardCommandResult) error {
	p, _ := input.Command.PanelFor()
	return res.View.Select(p)
}

func closePanel(_ context.Context, _ DashboardCommandInput, _ DashboardCommandDeps, res *DashboardCommandResult) error {
	res.View.Close()
	return nil
}

func deleteUserCommand(ctx context.Context, input DashboardCommandInput, deps DashboardCommandDeps, res *DashboardCommandResult) error {
	err := ExecuteDeleteUser(ctx, DeleteUserInput{Session: input.Session, Username: input.Username}, DeleteUserDeps{Users: deps.Users})
	if err != nil {
		return err
	}
	res.View.Active = dashboard.PanelUsers
	res.Message = MsgUserDeleted
	return nil
}

func updateProfileCommand(ctx context.Context, input DashboardCommandInput, deps DashboardCommandDeps, res *DashboardCommandResult) error {
	if !dashboard.Allowed(input.Session.Role(), dashboard.PanelProfile) {
		return dashboard.ErrPanelNotAllowed
	}
	sess, err := ExecuteUpdateProfile(ctx, UpdateProfileInput{
		VisitorID: input.VisitorID,
		Session:   input.Session,
		Email:     input.Email,
		Phone:     input.Phone,
	}, UpdateProfileDeps{Users: deps.Users, Sessions: deps.Sessions})
	if err != nil {
		return err
	}
	res.Session = sess
	res.View.Active = dashboard.PanelProfile
	res.Message = MsgProfileUpdated
	return nil
}
