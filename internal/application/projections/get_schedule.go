package projections

import (
	"serene/internal/domain/schedule"
)

// GetScheduleQuery carries the class filter chosen on the page.
type GetScheduleQuery struct {
	Class string // "" or "all" selects every class
}

// GetScheduleDeps holds the calendar generated at startup.
type GetScheduleDeps struct {
	Events []schedule.Event
}

// ClassCard is one roster entry shown in the classes section.
type ClassCard struct {
	schedule.ClassTemplate
	Selected bool
}

// ScheduleResult carries the classes section and calendar events.
type ScheduleResult struct {
	Filter  string
	Classes []ClassCard
	Events  []schedule.Event
}

// QueryGetSchedule filters the generated calendar by class title.
// POST: an unknown class yields no events; the roster is always complete
func QueryGetSchedule(query GetScheduleQuery, deps GetScheduleDeps) ScheduleResult {
	filter := query.Class
	if filter == "" {
		filter = schedule.FilterAll
	}
	cards := make([]ClassCard, len(schedule.Roster))
	for i, c := range schedule.Roster {
		cards[i] = ClassCard{ClassTemplate: c, Selected: c.Title == filter}
	}
	events := schedule.Filter(deps.Events, filter)
	if events == nil {
		events = []schedule.Event{}
	}
	return ScheduleResult{Filter: filter, Classes: cards, Events: events}
}
