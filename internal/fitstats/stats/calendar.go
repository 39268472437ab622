package stats

import (
	"sort"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/fitstats/activities"
)

// DayCount tells how many of the activities were done on a day.
// Completed never exceeds Total.
type DayCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type CalendarDay struct {
	Date fitstats.Day `json:"date"`
	DayCount
}

// Calendar holds one DayCount per day of a window.
type Calendar map[fitstats.Day]DayCount

// BuildCalendar counts, for every day of the window, the distinct activities
// with a completion on that day. Total is the current number of activities
// for every day, since past activity sets are not kept. Completions of
// activities missing from acts or outside the window are ignored.
func BuildCalendar(window fitstats.Window, acts []activities.Activity, completions []activities.Completion) Calendar {
	known := make(map[string]bool, len(acts))
	for _, a := range acts {
		known[a.ID] = true
	}
	total := len(known)

	calendar := make(Calendar, window.Len())
	for _, day := range window.Days() {
		calendar[day] = DayCount{Total: total}
	}

	seen := make(map[activities.Completion]bool, len(completions))
	for _, c := range completions {
		if !known[c.ActivityID] || !window.Contains(c.Day) || seen[c] {
			continue
		}
		seen[c] = true

		count := calendar[c.Day]
		count.Completed++
		calendar[c.Day] = count
	}

	return calendar
}

// Days lists the calendar in date order.
func (c Calendar) Days() []CalendarDay {
	days := make([]CalendarDay, 0, len(c))
	for day, count := range c {
		days = append(days, CalendarDay{Date: day, DayCount: count})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
