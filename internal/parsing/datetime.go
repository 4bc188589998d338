package parsing

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeToken is an absolute end time made of a date part and a time part.
// Either part may be empty, but not both.
type DateTimeToken struct {
	Date DateToken
	Time TimeToken
}

// Valid reports whether both parts are valid.
func (t *DateTimeToken) Valid() bool {
	return t != nil && ValidDate(t.Date) && ValidTime(t.Time)
}

// EndTime returns the first instant after start that the token describes.
// The date is resolved inclusively first; when that lands at or before start
// the next occurrence of the date is used instead.
func (t *DateTimeToken) EndTime(start time.Time) (time.Time, error) {
	if !t.Valid() {
		return time.Time{}, fmt.Errorf("%w: date/time token is not valid", ErrInvalidOperation)
	}

	end, err := t.resolve(start, true)
	if err != nil {
		return time.Time{}, err
	}
	if !end.After(start) {
		if end, err = t.resolve(start, false); err != nil {
			return time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, fmt.Errorf("%w: end time %s is before start %s",
			ErrInvalidOperation, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return end, nil
}

func (t *DateTimeToken) resolve(start time.Time, inclusive bool) (time.Time, error) {
	datePart, err := ResolveDate(t.Date, start, inclusive)
	if err != nil {
		return time.Time{}, err
	}
	return ResolveTime(t.Time, start, datePart)
}

// Format renders the token for display, e.g. "until Friday at 5 pm".
func (t *DateTimeToken) Format(p Provider) string {
	if !t.Valid() {
		return fmt.Sprintf("%T", t)
	}

	datePart := FormatDate(t.Date, p)
	timePart := FormatTime(t.Time, p)
	hasDate := strings.TrimSpace(datePart) != ""
	hasTime := strings.TrimSpace(timePart) != ""

	switch {
	case hasDate && hasTime:
		return formatResource(p.Resource("date_time.date_time_format"), datePart, timePart)
	case hasDate:
		return formatResource(p.Resource("date_time.date_only_format"), datePart)
	case hasTime:
		return formatResource(p.Resource("date_time.time_only_format"), timePart)
	default:
		return ""
	}
}
