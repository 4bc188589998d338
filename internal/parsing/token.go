package parsing

import (
	"fmt"
	"time"
)

// Kind distinguishes the two families of timer start.
type Kind string

const (
	KindDateTime Kind = "date_time"
	KindTimeSpan Kind = "time_span"
)

// TimerStartToken is a parsed timer input. Exactly one of DateTime and
// TimeSpan is set.
type TimerStartToken struct {
	// OriginalInput is the text the token was parsed from, kept for redisplay.
	OriginalInput string
	DateTime      *DateTimeToken
	TimeSpan      *TimeSpanToken
}

// Kind reports which family the token belongs to, or "" when it holds neither.
func (t *TimerStartToken) Kind() Kind {
	switch {
	case t == nil:
		return ""
	case t.DateTime != nil:
		return KindDateTime
	case t.TimeSpan != nil:
		return KindTimeSpan
	default:
		return ""
	}
}

// Valid reports whether the token holds exactly one valid child.
func (t *TimerStartToken) Valid() bool {
	if t == nil || (t.DateTime != nil) == (t.TimeSpan != nil) {
		return false
	}
	if t.DateTime != nil {
		return t.DateTime.Valid()
	}
	return t.TimeSpan.Valid()
}

// EndTime returns when a timer started at start should expire.
func (t *TimerStartToken) EndTime(start time.Time) (time.Time, error) {
	if !t.Valid() {
		return time.Time{}, fmt.Errorf("%w: timer start token is not valid", ErrInvalidOperation)
	}
	if t.DateTime != nil {
		return t.DateTime.EndTime(start)
	}
	return t.TimeSpan.EndTime(start)
}

// TryEndTime is EndTime for callers that only need to know whether it worked.
func (t *TimerStartToken) TryEndTime(start time.Time) (time.Time, bool) {
	end, err := t.EndTime(start)
	if err != nil {
		return time.Time{}, false
	}
	return end, true
}

// Format renders the token for display under p.
func (t *TimerStartToken) Format(p Provider) string {
	if !t.Valid() {
		return fmt.Sprintf("%T", t)
	}
	if t.DateTime != nil {
		return t.DateTime.Format(p)
	}
	return t.TimeSpan.Format(p)
}
