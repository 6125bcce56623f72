package schedule

import "time"

type WorkSchedule struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []WorkScheduleLine
}

// WorkScheduleLine is one weekly entry of a schedule. DayOfWeek follows the
// calendar convention 0=Monday .. 6=Sunday. A weekday is a working day iff
// some line for it has DurationDays > 0.
type WorkScheduleLine struct {
	ID             string
	WorkScheduleID string
	DayOfWeek      int
	DurationDays   float64
}

// Weekday converts the 0=Monday line convention to time.Weekday.
func (l WorkScheduleLine) Weekday() time.Weekday {
	return time.Weekday((l.DayOfWeek + 1) % 7)
}

// CalendarException is a dated non-working exception (public holiday)
// attached to a schedule, independent of weekday.
type CalendarException struct {
	ID             string
	WorkScheduleID string
	DateFrom       time.Time
	DateTo         time.Time
	Label          string
}

// Overlaps reports whether the exception touches the [from, to] window.
func (e CalendarException) Overlaps(from, to time.Time) bool {
	return !e.DateFrom.After(to) && !e.DateTo.Before(from)
}
