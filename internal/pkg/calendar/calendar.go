package calendar

import "time"

// DateLayout is the canonical date key format used across the schedule engine.
const DateLayout = "2006-01-02"

// Calendar hides date arithmetic from the aggregation engine.
// Dates are wall-clock dates: the year, month and day of a time.Time are used
// as-is, never converted between zones. Callers holding an instant (such as
// time.Now) convert it with In(Location()) first.
// Implementations must be safe for concurrent use.
type Calendar interface {
	// Location returns the zone all dates are interpreted in.
	Location() *time.Location

	// WeekdayIndex returns the Monday-first index of t: 0 = Monday ... 6 = Sunday.
	WeekdayIndex(t time.Time) int

	// StartOfMonth returns midnight of the 1st of the month.
	StartOfMonth(year int, month time.Month) time.Time

	// EndOfMonth returns midnight of the last day of the month.
	EndOfMonth(year int, month time.Month) time.Time

	// DaysInMonth returns the number of days in the month.
	DaysInMonth(year int, month time.Month) int

	// StartOfWeek returns midnight of the Monday of the week containing t.
	StartOfWeek(t time.Time) time.Time

	// AddDays shifts t by n calendar days (negative n subtracts).
	AddDays(t time.Time, n int) time.Time

	// Date returns midnight of t's date in the calendar's location.
	Date(t time.Time) time.Time

	// DateKey formats t's date as YYYY-MM-DD.
	DateKey(t time.Time) string

	// ParseDate parses a YYYY-MM-DD string in the calendar's location.
	ParseDate(s string) (time.Time, error)
}

type gregorian struct {
	loc *time.Location
}

// New returns a Gregorian calendar bound to loc. A nil loc means UTC.
func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &gregorian{loc: loc}
}

func (g *gregorian) Location() *time.Location {
	return g.loc
}

func (g *gregorian) WeekdayIndex(t time.Time) int {
	// time.Weekday is Sunday-first (Sunday = 0)
	return (int(t.Weekday()) + 6) % 7
}

func (g *gregorian) StartOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, g.loc)
}

func (g *gregorian) EndOfMonth(year int, month time.Month) time.Time {
	return g.StartOfMonth(year, month).AddDate(0, 1, -1)
}

func (g *gregorian) DaysInMonth(year int, month time.Month) int {
	return g.EndOfMonth(year, month).Day()
}

func (g *gregorian) StartOfWeek(t time.Time) time.Time {
	d := g.Date(t)
	return d.AddDate(0, 0, -g.WeekdayIndex(d))
}

func (g *gregorian) AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func (g *gregorian) Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.loc)
}

func (g *gregorian) DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func (g *gregorian) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, g.loc)
}

// LoadLocation resolves an IANA zone name, falling back to UTC when the name
// is empty or unknown.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
