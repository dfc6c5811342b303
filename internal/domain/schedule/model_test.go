package schedule_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"serene/internal/domain/schedule"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TestGenerate_WeeklyPermutation checks every week uses each template once, Monday to Saturday.
func TestGenerate_WeeklyPermutation(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) // a Wednesday
	events := schedule.Generate(start, schedule.DefaultWeeks, newRand(42))

	if len(events) != schedule.DefaultWeeks*schedule.ActiveDays {
		t.Fatalf("len(events) = %d, want %d", len(events), schedule.DefaultWeeks*schedule.ActiveDays)
	}

	for week := 0; week < schedule.DefaultWeeks; week++ {
		seen := make(map[string]int)
		for day := 0; day < schedule.ActiveDays; day++ {
			e := events[week*schedule.ActiveDays+day]
			d, err := time.Parse(schedule.DateLayout, e.Date)
			if err != nil {
				t.Fatalf("bad date %q: %v", e.Date, err)
			}
			wantDay := time.Weekday(int(time.Monday) + day)
			if d.Weekday() != wantDay {
				t.Errorf("week %d day %d: %s is %s, want %s", week, day, e.Date, d.Weekday(), wantDay)
			}
			if _, ok := schedule.Template(e.Title); !ok {
				t.Errorf("unknown class %q", e.Title)
			}
			seen[e.Title]++
		}
		if len(seen) != len(schedule.Roster) {
			t.Errorf("week %d used %d distinct classes, want %d", week, len(seen), len(schedule.Roster))
		}
		for title, n := range seen {
			if n != 1 {
				t.Errorf("week %d: %q appears %d times", week, title, n)
			}
		}
	}
}

// TestGenerate_CopiesTemplateFields checks event fields come from the roster entry.
func TestGenerate_CopiesTemplateFields(t *testing.T) {
	events := schedule.Generate(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 1, newRand(7))
	for _, e := range events {
		tpl, _ := schedule.Template(e.Title)
		if e.Time != tpl.Time || e.Instructor != tpl.Instructor || e.Level != tpl.Level || e.Duration != tpl.Duration {
			t.Errorf("event %+v does not match template %+v", e, tpl)
		}
	}
	if events[0].Date != "2025-03-03" {
		t.Errorf("first date = %s, want 2025-03-03 (a Monday)", events[0].Date)
	}
}

// TestFirstMonday covers start dates on every weekday.
func TestFirstMonday(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-01-01", "2025-01-06"}, // Wednesday
		{"2025-01-05", "2025-01-06"}, // Sunday
		{"2025-01-06", "2025-01-06"}, // Monday
		{"2025-01-07", "2025-01-13"}, // Tuesday
	}
	for _, tt := range tests {
		in, _ := time.Parse(schedule.DateLayout, tt.in)
		if got := schedule.FirstMonday(in).Format(schedule.DateLayout); got != tt.want {
			t.Errorf("FirstMonday(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// TestFilter is a pure sub-sequence selection.
func TestFilter(t *testing.T) {
	events := schedule.Generate(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 4, newRand(1))
	if got := schedule.Filter(events, schedule.FilterAll); len(got) != len(events) {
		t.Errorf("Filter(all) len = %d", len(got))
	}
	if got := schedule.Filter(events, ""); len(got) != len(events) {
		t.Errorf("Filter(\"\") len = %d", len(got))
	}
	yin := schedule.Filter(events, "Yin Yoga")
	if len(yin) != 4 {
		t.Fatalf("Filter(Yin Yoga) len = %d, want 4", len(yin))
	}
	for i := 1; i < len(yin); i++ {
		if yin[i-1].Date >= yin[i].Date {
			t.Errorf("filter reordered events: %s before %s", yin[i-1].Date, yin[i].Date)
		}
	}
	if got := schedule.Filter(events, "Hot Yoga"); len(got) != 0 {
		t.Errorf("Filter(unknown) len = %d", len(got))
	}
}

// TestFind locates an event by date and title.
func TestFind(t *testing.T) {
	events := schedule.Generate(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1, newRand(3))
	e, ok := schedule.Find(events, events[2].Date, events[2].Title)
	if !ok || e != events[2] {
		t.Errorf("Find = %+v, %v", e, ok)
	}
	if _, ok := schedule.Find(events, "1999-01-01", events[0].Title); ok {
		t.Error("expected miss")
	}
}
