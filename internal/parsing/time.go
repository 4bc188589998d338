package parsing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeToken is the time-of-day part of a DateTimeToken. The variants are
// *NormalTimeToken, *SpecialTimeToken and *EmptyTimeToken.
type TimeToken interface {
	timeToken()
}

// NormalTimeToken is a clock time stored on a 12-hour clock.
type NormalTimeToken struct {
	Hour   int
	Minute int
	Second int
	Period HourPeriod
}

// SpecialTimeToken is a named time of day.
type SpecialTimeToken struct {
	SpecialTime SpecialTime
}

// EmptyTimeToken stands for an input that names no time; it resolves to
// midnight.
type EmptyTimeToken struct{}

func (*NormalTimeToken) timeToken()  {}
func (*SpecialTimeToken) timeToken() {}
func (*EmptyTimeToken) timeToken()   {}

// IsMidnight reports whether t is 12:00:00 am.
func (t *NormalTimeToken) IsMidnight() bool {
	return t.Hour == 12 && t.Minute == 0 && t.Second == 0 && t.Period == PeriodAm
}

// IsMidday reports whether t is 12:00:00 pm.
func (t *NormalTimeToken) IsMidday() bool {
	return t.Hour == 12 && t.Minute == 0 && t.Second == 0 && t.Period == PeriodPm
}

// ValidTime reports whether t can be resolved.
func ValidTime(t TimeToken) bool {
	switch t := t.(type) {
	case *NormalTimeToken:
		return t != nil &&
			t.Hour >= 1 && t.Hour <= 12 &&
			t.Minute >= 0 && t.Minute <= 59 &&
			t.Second >= 0 && t.Second <= 59 &&
			t.Period.valid()
	case *SpecialTimeToken:
		return t != nil && t.SpecialTime.valid()
	case *EmptyTimeToken:
		return t != nil
	default:
		return false
	}
}

// ResolveTime places t on datePart's calendar day. minDate is only consulted
// to pick am or pm for a time without a period: the earlier reading wins
// unless it is already before minDate.
func ResolveTime(t TimeToken, minDate, datePart time.Time) (time.Time, error) {
	if !ValidTime(t) {
		return time.Time{}, fmt.Errorf("%w: %T is not valid", ErrInvalidOperation, t)
	}

	day := truncateToDay(datePart)
	at := func(hour, minute, second int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location())
	}

	switch t := t.(type) {
	case *NormalTimeToken:
		earlyHour, lateHour := t.Hour, t.Hour
		if earlyHour == 12 {
			earlyHour = 0
		}
		if lateHour < 12 {
			lateHour += 12
		}
		early := at(earlyHour, t.Minute, t.Second)
		late := at(lateHour, t.Minute, t.Second)

		switch t.Period {
		case PeriodAm:
			return early, nil
		case PeriodPm:
			return late, nil
		default:
			if early.Before(minDate) {
				return late, nil
			}
			return early, nil
		}
	case *SpecialTimeToken:
		def := t.SpecialTime.def()
		return at(def.hour, def.minute, def.second), nil
	case *EmptyTimeToken:
		return day, nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown time token %T", ErrInvalidOperation, t)
}

// FormatTime renders t for display. Invalid tokens render as their type name.
func FormatTime(t TimeToken, p Provider) string {
	if !ValidTime(t) {
		return fmt.Sprintf("%T", t)
	}

	switch t := t.(type) {
	case *NormalTimeToken:
		return formatNormalTime(t, p)
	case *SpecialTimeToken:
		return p.Resource("special_time." + t.SpecialTime.String() + "_name")
	case *EmptyTimeToken:
		return ""
	}
	return fmt.Sprintf("%T", t)
}

func formatNormalTime(t *NormalTimeToken, p Provider) string {
	prefer24 := p.Prefer24Hour()

	hour := t.Hour
	if prefer24 {
		switch {
		case t.Hour == 12 && t.Period == PeriodAm:
			hour = 0
		case t.Hour < 12 && t.Period == PeriodPm:
			hour += 12
		}
	}

	var b strings.Builder
	b.WriteString(formatResource(p.Resource("normal_time.hour_part_format"), strconv.Itoa(hour)))

	if t.Minute != 0 || t.Second != 0 || t.Period == PeriodUndefined || prefer24 {
		b.WriteString(formatResource(p.Resource("normal_time.minute_part_format"), fmt.Sprintf("%02d", t.Minute)))
		if t.Second != 0 {
			b.WriteString(formatResource(p.Resource("normal_time.second_part_format"), fmt.Sprintf("%02d", t.Second)))
		}
	}

	switch {
	case prefer24:
	case t.IsMidday():
		b.WriteString(p.Resource("normal_time.midday_suffix"))
	case t.IsMidnight():
		b.WriteString(p.Resource("normal_time.midnight_suffix"))
	case t.Period == PeriodAm:
		b.WriteString(p.Resource("normal_time.am_suffix"))
	case t.Period == PeriodPm:
		b.WriteString(p.Resource("normal_time.pm_suffix"))
	}
	return b.String()
}
