package parsing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"
)

// DateToken is the date part of a DateTimeToken. The variants are
// *NormalDateToken, *DayOfWeekDateToken, *RelativeDateToken,
// *SpecialDateToken and *EmptyDateToken.
type DateToken interface {
	dateToken()
}

// NormalDateToken is a date given by any combination of year, month and day.
type NormalDateToken struct {
	Year  *int
	Month *int
	Day   *int
}

// DayOfWeekDateToken is the next occurrence of a weekday, e.g. "friday" or
// "friday after next".
type DayOfWeekDateToken struct {
	DayOfWeek *time.Weekday
	Relation  *DayOfWeekRelation
}

// RelativeDateToken is a date relative to the start date.
type RelativeDateToken struct {
	RelativeDate RelativeDate
}

// SpecialDateToken is a named holiday with a fixed month and day.
type SpecialDateToken struct {
	SpecialDate SpecialDate
}

// EmptyDateToken stands for an input that names no date.
type EmptyDateToken struct{}

func (*NormalDateToken) dateToken()    {}
func (*DayOfWeekDateToken) dateToken() {}
func (*RelativeDateToken) dateToken()  {}
func (*SpecialDateToken) dateToken()   {}
func (*EmptyDateToken) dateToken()     {}

// ValidDate reports whether d can be resolved.
func ValidDate(d DateToken) bool {
	switch d := d.(type) {
	case *NormalDateToken:
		return d != nil &&
			validYMD(d.Year, d.Month, d.Day) &&
			(d.Year != nil || d.Month != nil || d.Day != nil) &&
			!(d.Year != nil && d.Month == nil && d.Day != nil)
	case *DayOfWeekDateToken:
		return d != nil &&
			d.DayOfWeek != nil && *d.DayOfWeek >= time.Sunday && *d.DayOfWeek <= time.Saturday &&
			d.Relation != nil && d.Relation.valid()
	case *RelativeDateToken:
		return d != nil && d.RelativeDate.valid()
	case *SpecialDateToken:
		return d != nil && d.SpecialDate.valid()
	case *EmptyDateToken:
		return d != nil
	default:
		return false
	}
}

// ResolveDate returns midnight of the first date on or after minDate
// (strictly after when inclusive is false) that d describes. The result is
// in minDate's location.
func ResolveDate(d DateToken, minDate time.Time, inclusive bool) (time.Time, error) {
	if !ValidDate(d) {
		return time.Time{}, fmt.Errorf("%w: %T is not valid", ErrInvalidOperation, d)
	}

	switch d := d.(type) {
	case *NormalDateToken:
		return resolveNormalDate(d, minDate, inclusive)
	case *DayOfWeekDateToken:
		return resolveDayOfWeekDate(d, minDate), nil
	case *RelativeDateToken:
		return truncateToDay(minDate).AddDate(0, 0, d.RelativeDate.def().days), nil
	case *SpecialDateToken:
		return resolveSpecialDate(d, minDate, inclusive)
	case *EmptyDateToken:
		if inclusive {
			return truncateToDay(minDate), nil
		}
		return truncateToDay(minDate).AddDate(0, 0, 1), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown date token %T", ErrInvalidOperation, d)
}

// resolveNormalDate fills unset fields from minDate and walks forward month by
// month (day only) or year by year (no year) until the date is late enough.
// A fully specified date is returned as is, even when it is in the past.
func resolveNormalDate(d *NormalDateToken, minDate time.Time, inclusive bool) (time.Time, error) {
	loc := minDate.Location()
	minDay := truncateToDay(minDate)

	year := minDate.Year()
	if d.Year != nil {
		year = *d.Year
	}

	month := int(minDate.Month())
	switch {
	case d.Month != nil:
		month = *d.Month
	case d.Year != nil:
		month = 1
	}

	day := minDate.Day()
	switch {
	case d.Day != nil:
		day = *d.Day
	case d.Year != nil || d.Month != nil:
		day = 1
	}

	for {
		date, ok := makeDate(year, month, day, loc)
		if ok && !date.Before(minDay) && (inclusive || !date.Equal(minDay)) {
			return date, nil
		}

		switch {
		case d.Month == nil && d.Year == nil:
			year, month = incrementMonth(year, month)
		case d.Year == nil:
			year++
		case ok:
			return date, nil
		default:
			return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d is not a date", ErrInvalidOperation, year, month, day)
		}

		if year > maxYear {
			return time.Time{}, fmt.Errorf("%w: no matching date after %s", ErrInvalidOperation, minDay.Format("2006-01-02"))
		}
	}
}

// resolveDayOfWeekDate never returns minDate's own day. Relations compare
// weekday ordinals (Sunday is 0), not distances.
func resolveDayOfWeekDate(d *DayOfWeekDateToken, minDate time.Time) time.Time {
	date := truncateToDay(minDate).AddDate(0, 0, 1)
	for date.Weekday() != *d.DayOfWeek {
		date = date.AddDate(0, 0, 1)
	}

	switch *d.Relation {
	case RelationAfterNext:
		date = date.AddDate(0, 0, 7)
	case RelationNextWeek:
		if *d.DayOfWeek > minDate.Weekday() {
			date = date.AddDate(0, 0, 7)
		}
	}
	return date
}

// resolveSpecialDate finds the next yearly occurrence on or after minDate's
// calendar day. A holiday that is today rolls a whole year when exclusive.
func resolveSpecialDate(d *SpecialDateToken, minDate time.Time, inclusive bool) (time.Time, error) {
	def := d.SpecialDate.def()
	minDay := truncateToDay(minDate)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Bymonth:    []int{def.month},
		Bymonthday: []int{def.day},
		Dtstart:    time.Date(minDay.Year(), time.January, 1, 0, 0, 0, 0, minDay.Location()),
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}

	next := r.After(minDay, inclusive)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no %s after %s", ErrInvalidOperation, d.SpecialDate, minDay.Format("2006-01-02"))
	}
	return next, nil
}

// FormatDate renders d for display. Invalid tokens render as their type name.
func FormatDate(d DateToken, p Provider) string {
	if !ValidDate(d) {
		return fmt.Sprintf("%T", d)
	}

	switch d := d.(type) {
	case *NormalDateToken:
		return formatNormalDate(d, p)
	case *DayOfWeekDateToken:
		return formatResource(
			p.Resource("day_of_week."+d.Relation.String()+"_format"),
			weekdayName(*d.DayOfWeek, p))
	case *RelativeDateToken:
		return p.Resource("relative_date." + d.RelativeDate.String() + "_name")
	case *SpecialDateToken:
		return p.Resource("special_date." + d.SpecialDate.String() + "_name")
	case *EmptyDateToken:
		return ""
	}
	return fmt.Sprintf("%T", d)
}

func formatNormalDate(d *NormalDateToken, p Provider) string {
	switch {
	case d.Day != nil && d.Month == nil && d.Year == nil:
		return formatResource(p.Resource("normal_date.day_only_format"), ordinalDay(*d.Day, p))

	case d.Day != nil && d.Month != nil && d.Year == nil:
		key := "normal_date.day_and_month_format"
		if p.IsMonthFirst() {
			key = "normal_date.month_and_day_format"
		}
		return formatResource(p.Resource(key), strconv.Itoa(*d.Day), monthName(*d.Month, p))

	case d.Day != nil && d.Month != nil && d.Year != nil:
		key := "normal_date.day_month_and_year_format"
		if p.IsMonthFirst() {
			key = "normal_date.month_day_and_year_format"
		}
		return formatResource(p.Resource(key), strconv.Itoa(*d.Day), monthName(*d.Month, p), strconv.Itoa(*d.Year))

	case d.Day == nil && d.Month != nil && d.Year == nil:
		return formatResource(p.Resource("normal_date.month_only_format"), monthName(*d.Month, p))

	case d.Day == nil && d.Month != nil && d.Year != nil:
		return formatResource(p.Resource("normal_date.month_and_year_format"), monthName(*d.Month, p), strconv.Itoa(*d.Year))

	case d.Day == nil && d.Month == nil && d.Year != nil:
		return formatResource(p.Resource("normal_date.year_only_format"), strconv.Itoa(*d.Year))
	}
	return fmt.Sprintf("%T", d)
}
