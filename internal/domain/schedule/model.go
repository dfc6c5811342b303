package schedule

import (
	"math/rand/v2"
	"time"
)

// DateLayout is the ISO date format used for event dates.
const DateLayout = "2006-01-02"

// DefaultWeeks is how far ahead the calendar is generated.
const DefaultWeeks = 52

// ActiveDays is the number of class days per week (Monday to Saturday).
const ActiveDays = 6

// FilterAll selects every event.
const FilterAll = "all"

// ClassTemplate is one entry of the fixed class roster.
type ClassTemplate struct {
	Title       string
	Time        string // e.g. "7:00 AM"
	Instructor  string
	Level       string
	Duration    string
	Description string // markdown
}

// Event is one scheduled class on the calendar.
type Event struct {
	Title      string `json:"title"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"`
	Instructor string `json:"instructor"`
	Level      string `json:"level"`
	Duration   string `json:"duration"`
}

// Roster is the fixed set of six class templates.
var Roster = []ClassTemplate{
	{
		Title: "Hatha Yoga", Time: "7:00 AM", Instructor: "Anjali Sharma",
		Level: "Beginner, Intermediate", Duration: "60 minutes",
		Description: "Slow, **alignment-focused** postures paired with breath work. A good first class.",
	},
	{
		Title: "Vinyasa Flow", Time: "8:00 AM", Instructor: "Julie Smith",
		Level: "Intermediate, Advanced", Duration: "75 minutes",
		Description: "Breath-linked sequences that build heat and *fluid strength*.",
	},
	{
		Title: "Yin Yoga", Time: "8:00 PM", Instructor: "Priya Patel",
		Level: "All Levels", Duration: "90 minutes",
		Description: "Long, passive holds that open connective tissue. Bring a blanket.",
	},
	{
		Title: "Power Yoga", Time: "6:00 PM", Instructor: "Anjali Sharma",
		Level: "Intermediate, Advanced", Duration: "60 minutes",
		Description: "A vigorous, fitness-based flow for building **stamina**.",
	},
	{
		Title: "Restorative Yoga", Time: "7:00 PM", Instructor: "Neha Gupta",
		Level: "All Levels", Duration: "75 minutes",
		Description: "Supported poses with bolsters and blocks to *down-regulate* the nervous system.",
	},
	{
		Title: "Ashtanga Yoga", Time: "8:00 AM", Instructor: "Sakshi Patwal",
		Level: "Intermediate, Advanced", Duration: "90 minutes",
		Description: "The traditional primary series, practised in a set order.",
	},
}

// Titles returns the roster's class names in roster order.
func Titles() []string {
	out := make([]string, len(Roster))
	for i, c := range Roster {
		out[i] = c.Title
	}
	return out
}

// Template returns the roster entry with the given title.
func Template(title string) (ClassTemplate, bool) {
	for _, c := range Roster {
		if c.Title == title {
			return c, true
		}
	}
	return ClassTemplate{}, false
}

// FirstMonday returns the Monday on or after t, at midnight in t's location.
func FirstMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// Generate builds weeks of classes starting at the first Monday on or after start.
// Each week shuffles the roster independently and assigns one class to each of
// Monday through Saturday by position. Sunday never has a class.
// PRE: weeks >= 0, rng is non-nil
// POST: returns weeks*ActiveDays events, each week using every template exactly once
func Generate(start time.Time, weeks int, rng *rand.Rand) []Event {
	monday := FirstMonday(start)
	events := make([]Event, 0, weeks*ActiveDays)
	for week := 0; week < weeks; week++ {
		weekStart := monday.AddDate(0, 0, week*7)
		shuffled := make([]ClassTemplate, len(Roster))
		copy(shuffled, Roster)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for day := 0; day < ActiveDays; day++ {
			c := shuffled[day]
			events = append(events, Event{
				Title:      c.Title,
				Date:       weekStart.AddDate(0, 0, day).Format(DateLayout),
				Time:       c.Time,
				Instructor: c.Instructor,
				Level:      c.Level,
				Duration:   c.Duration,
			})
		}
	}
	return events
}

// Filter returns the events whose title equals class. Empty or FilterAll returns all.
func Filter(events []Event, class string) []Event {
	if class == "" || class == FilterAll {
		return events
	}
	var out []Event
	for _, e := range events {
		if e.Title == class {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the event on date with the given title.
func Find(events []Event, date, title string) (Event, bool) {
	for _, e := range events {
		if e.Date == date && e.Title == title {
			return e, true
		}
	}
	return Event{}, false
}
