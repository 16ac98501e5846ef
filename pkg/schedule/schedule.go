package schedule

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule computes the next occurrence of a recurring instant.
type Schedule interface {
	Next(from time.Time) time.Time
}

// everySchedule runs at fixed intervals.
type everySchedule struct {
	interval time.Duration
}

// Every creates a schedule that recurs at fixed intervals.
func Every(d time.Duration) Schedule {
	return &everySchedule{interval: d}
}

func (s *everySchedule) Next(from time.Time) time.Time {
	return from.Add(s.interval)
}

// dailySchedule recurs at hour:minute each day, evaluated in UTC.
type dailySchedule struct {
	hour   int
	minute int
}

// Daily creates a schedule that recurs at hour:minute each day. Occurrences
// are computed on the UTC calendar regardless of the location of the time
// passed to Next; observation windows are planned in UTC.
func Daily(hour, minute int) Schedule {
	return &dailySchedule{hour: hour, minute: minute}
}

func (s *dailySchedule) Next(from time.Time) time.Time {
	f := from.UTC()
	y, m, d := f.Date()
	next := time.Date(y, m, d, s.hour, s.minute, 0, 0, time.UTC)
	for !next.After(f) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// weeklySchedule recurs on one weekday at hour:minute, evaluated in UTC.
type weeklySchedule struct {
	day    time.Weekday
	hour   int
	minute int
}

// Weekly creates a schedule that recurs on day at hour:minute each week,
// computed on the UTC calendar like Daily.
func Weekly(day time.Weekday, hour, minute int) Schedule {
	return &weeklySchedule{day: day, hour: hour, minute: minute}
}

func (s *weeklySchedule) Next(from time.Time) time.Time {
	f := from.UTC()
	y, m, d := f.Date()
	next := time.Date(y, m, d, s.hour, s.minute, 0, 0, time.UTC)
	next = next.AddDate(0, 0, int((s.day-next.Weekday()+7)%7))
	if !next.After(f) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// cronSchedule wraps a cron expression.
type cronSchedule struct {
	schedule cron.Schedule
}

// ParseCron creates a schedule from a standard five-field cron expression.
func ParseCron(expr string) (Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &cronSchedule{schedule: sched}, nil
}

// Cron creates a schedule from a cron expression, panicking on a malformed
// expression. Use ParseCron when the expression comes from configuration.
func Cron(expr string) Schedule {
	s, err := ParseCron(expr)
	if err != nil {
		panic("invalid cron expression: " + err.Error())
	}
	return s
}

func (s *cronSchedule) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}
