package parsing

import "fmt"

// DayOfWeekRelation says which occurrence of a weekday is meant.
type DayOfWeekRelation int

const (
	// RelationNext is the first occurrence after today: "friday", "next friday".
	RelationNext DayOfWeekRelation = iota
	// RelationAfterNext is one week after RelationNext: "friday after next".
	RelationAfterNext
	// RelationNextWeek is "friday next week".
	RelationNextWeek
)

var relationNames = []string{"next", "after_next", "next_week"}

func (r DayOfWeekRelation) valid() bool { return r >= 0 && int(r) < len(relationNames) }

func (r DayOfWeekRelation) String() string {
	if !r.valid() {
		return fmt.Sprintf("DayOfWeekRelation(%d)", int(r))
	}
	return relationNames[r]
}

func (r DayOfWeekRelation) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: day of week relation %d", ErrArgument, int(r))
	}
	return []byte(r.String()), nil
}

func (r *DayOfWeekRelation) UnmarshalText(b []byte) error {
	i, err := enumIndex("day of week relation", relationNames, string(b))
	if err != nil {
		return err
	}
	*r = DayOfWeekRelation(i)
	return nil
}

// RelativeDate is a date named relative to the start date.
type RelativeDate int

const (
	RelativeToday RelativeDate = iota
	RelativeTomorrow
)

type relativeDateDef struct {
	name string
	days int
}

var relativeDates = []relativeDateDef{
	{name: "today", days: 0},
	{name: "tomorrow", days: 1},
}

func (r RelativeDate) valid() bool          { return r >= 0 && int(r) < len(relativeDates) }
func (r RelativeDate) def() relativeDateDef { return relativeDates[r] }

func (r RelativeDate) String() string {
	if !r.valid() {
		return fmt.Sprintf("RelativeDate(%d)", int(r))
	}
	return relativeDates[r].name
}

func (r RelativeDate) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("%w: relative date %d", ErrArgument, int(r))
	}
	return []byte(r.String()), nil
}

func (r *RelativeDate) UnmarshalText(b []byte) error {
	names := make([]string, len(relativeDates))
	for i, d := range relativeDates {
		names[i] = d.name
	}
	i, err := enumIndex("relative date", names, string(b))
	if err != nil {
		return err
	}
	*r = RelativeDate(i)
	return nil
}

// SpecialDate is a holiday that falls on the same month and day every year.
type SpecialDate int

const (
	NewYear SpecialDate = iota
	ChristmasDay
	NewYearsEve
)

type specialDateDef struct {
	name  string
	month int
	day   int
}

var specialDates = []specialDateDef{
	{name: "new_year", month: 1, day: 1},
	{name: "christmas_day", month: 12, day: 25},
	{name: "new_years_eve", month: 12, day: 31},
}

func (s SpecialDate) valid() bool         { return s >= 0 && int(s) < len(specialDates) }
func (s SpecialDate) def() specialDateDef { return specialDates[s] }

func (s SpecialDate) String() string {
	if !s.valid() {
		return fmt.Sprintf("SpecialDate(%d)", int(s))
	}
	return specialDates[s].name
}

func (s SpecialDate) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: special date %d", ErrArgument, int(s))
	}
	return []byte(s.String()), nil
}

func (s *SpecialDate) UnmarshalText(b []byte) error {
	names := make([]string, len(specialDates))
	for i, d := range specialDates {
		names[i] = d.name
	}
	i, err := enumIndex("special date", names, string(b))
	if err != nil {
		return err
	}
	*s = SpecialDate(i)
	return nil
}

// SpecialTime is a named time of day.
type SpecialTime int

const (
	Midday SpecialTime = iota
	Midnight
)

type specialTimeDef struct {
	name                 string
	hour, minute, second int
}

var specialTimes = []specialTimeDef{
	{name: "midday", hour: 12},
	{name: "midnight", hour: 0},
}

func (s SpecialTime) valid() bool         { return s >= 0 && int(s) < len(specialTimes) }
func (s SpecialTime) def() specialTimeDef { return specialTimes[s] }

func (s SpecialTime) String() string {
	if !s.valid() {
		return fmt.Sprintf("SpecialTime(%d)", int(s))
	}
	return specialTimes[s].name
}

func (s SpecialTime) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: special time %d", ErrArgument, int(s))
	}
	return []byte(s.String()), nil
}

func (s *SpecialTime) UnmarshalText(b []byte) error {
	names := make([]string, len(specialTimes))
	for i, d := range specialTimes {
		names[i] = d.name
	}
	i, err := enumIndex("special time", names, string(b))
	if err != nil {
		return err
	}
	*s = SpecialTime(i)
	return nil
}

// HourPeriod is the half of the day a NormalTimeToken is in.
type HourPeriod int

const (
	PeriodAm HourPeriod = iota
	PeriodPm
	// PeriodUndefined lets the resolver pick the next upcoming half.
	PeriodUndefined
)

var periodNames = []string{"am", "pm", "undefined"}

func (h HourPeriod) valid() bool { return h >= 0 && int(h) < len(periodNames) }

func (h HourPeriod) String() string {
	if !h.valid() {
		return fmt.Sprintf("HourPeriod(%d)", int(h))
	}
	return periodNames[h]
}

func (h HourPeriod) MarshalText() ([]byte, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: hour period %d", ErrArgument, int(h))
	}
	return []byte(h.String()), nil
}

func (h *HourPeriod) UnmarshalText(b []byte) error {
	i, err := enumIndex("hour period", periodNames, string(b))
	if err != nil {
		return err
	}
	*h = HourPeriod(i)
	return nil
}

func enumIndex(kind string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrArgument, kind, s)
}
