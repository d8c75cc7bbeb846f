// Package schedule edits a shop's weekly working-hours schedule.
//
// A schedule always holds exactly seven entries, Sunday through
// Saturday, and edits are pure: every operation returns a new
// schedule and leaves the input untouched.
package schedule

import (
	"fmt"
	"regexp"

	"github.com/shoplane/shoplane-backend/pkg/types"
)

// DayNames are the canonical entry labels, week starting Sunday.
var DayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidTime reports whether the value is a well-formed HH:MM wall-clock time.
func ValidTime(value string) bool {
	return timeRe.MatchString(value)
}

// DefaultWeek returns the schedule applied to newly created shops:
// weekdays 09:00 to 18:00, Saturday 10:00 to 16:00, Sunday closed.
func DefaultWeek() types.WeekSchedule {
	week := make(types.WeekSchedule, 0, 7)
	for _, day := range DayNames {
		entry := types.DayHours{Day: day, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}
		switch day {
		case "Sunday":
			entry.IsOpen = false
		case "Saturday":
			entry.OpenTime = "10:00"
			entry.CloseTime = "16:00"
		}
		week = append(week, entry)
	}
	return week
}

// Normalize coerces arbitrary stored data into a full 7-entry week.
// Known entries are kept by day label; missing days fall back to the
// default week's entry.
func Normalize(week types.WeekSchedule) types.WeekSchedule {
	byDay := map[string]types.DayHours{}
	for _, entry := range week {
		byDay[entry.Day] = entry
	}

	normalized := DefaultWeek()
	for i, day := range DayNames {
		if entry, ok := byDay[day]; ok {
			entry.Day = day
			normalized[i] = entry
		}
	}
	return normalized
}

func indexOf(week types.WeekSchedule, day string) (int, error) {
	for i, entry := range week {
		if entry.Day == day {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", day)
}

func clone(week types.WeekSchedule) types.WeekSchedule {
	return append(types.WeekSchedule(nil), week...)
}

// SetDayOpen toggles whether the named day is open.
func SetDayOpen(week types.WeekSchedule, day string, open bool) (types.WeekSchedule, error) {
	week = Normalize(week)
	i, err := indexOf(week, day)
	if err != nil {
		return nil, err
	}
	out := clone(week)
	out[i].IsOpen = open
	return out, nil
}

// SetOpenTime updates the opening time for the named day.
func SetOpenTime(week types.WeekSchedule, day, value string) (types.WeekSchedule, error) {
	if !ValidTime(value) {
		return nil, fmt.Errorf("invalid time %q", value)
	}
	week = Normalize(week)
	i, err := indexOf(week, day)
	if err != nil {
		return nil, err
	}
	out := clone(week)
	out[i].OpenTime = value
	return out, nil
}

// SetCloseTime updates the closing time for the named day.
func SetCloseTime(week types.WeekSchedule, day, value string) (types.WeekSchedule, error) {
	if !ValidTime(value) {
		return nil, fmt.Errorf("invalid time %q", value)
	}
	week = Normalize(week)
	i, err := indexOf(week, day)
	if err != nil {
		return nil, err
	}
	out := clone(week)
	out[i].CloseTime = value
	return out, nil
}

// CopyTo copies the source day's hours and open flag onto every other
// day. Day labels are never copied.
func CopyTo(week types.WeekSchedule, sourceDay string) (types.WeekSchedule, error) {
	week = Normalize(week)
	i, err := indexOf(week, sourceDay)
	if err != nil {
		return nil, err
	}
	source := week[i]

	out := clone(week)
	for j := range out {
		if out[j].Day == sourceDay {
			continue
		}
		out[j].OpenTime = source.OpenTime
		out[j].CloseTime = source.CloseTime
		out[j].IsOpen = source.IsOpen
	}
	return out, nil
}

// BulkSet replaces the whole week. The input must carry exactly the
// seven canonical days with valid times.
func BulkSet(entries types.WeekSchedule) (types.WeekSchedule, error) {
	if len(entries) != 7 {
		return nil, fmt.Errorf("expected 7 entries, got %d", len(entries))
	}

	byDay := map[string]types.DayHours{}
	for _, entry := range entries {
		if !ValidTime(entry.OpenTime) {
			return nil, fmt.Errorf("invalid time %q for %s", entry.OpenTime, entry.Day)
		}
		if !ValidTime(entry.CloseTime) {
			return nil, fmt.Errorf("invalid time %q for %s", entry.CloseTime, entry.Day)
		}
		if _, dup := byDay[entry.Day]; dup {
			return nil, fmt.Errorf("duplicate day %q", entry.Day)
		}
		byDay[entry.Day] = entry
	}

	out := make(types.WeekSchedule, 0, 7)
	for _, day := range DayNames {
		entry, ok := byDay[day]
		if !ok {
			return nil, fmt.Errorf("missing day %q", day)
		}
		out = append(out, entry)
	}
	return out, nil
}
