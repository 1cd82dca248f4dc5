package models

import (
	"fmt"
	"strings"
	"time"
)

// Resolver maps a wall-clock instant to the canonical start instants of the
// periods a bucket can be keyed by. All boundaries are local midnight.
type Resolver struct {
	WeekStartsOn time.Weekday
}

func NewResolver(weekStart time.Weekday) Resolver {
	return Resolver{WeekStartsOn: weekStart}
}

// DayStart returns local midnight of the day containing t.
func (r Resolver) DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns local midnight of the most recent week boundary at or
// before t.
func (r Resolver) WeekStart(t time.Time) time.Time {
	day := r.DayStart(t)
	diff := (int(day.Weekday()) - int(r.WeekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// MonthStart returns local midnight of the first day of the month containing t.
func (r Resolver) MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(name string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(name)]; ok {
		return wd, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}
