package parsing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type tokenJSON struct {
	Type          Kind          `json:"type"`
	OriginalInput string        `json:"original_input,omitempty"`
	Date          *dateJSON     `json:"date,omitempty"`
	Time          *timeJSON     `json:"time,omitempty"`
	Span          *timeSpanJSON `json:"span,omitempty"`
}

type dateJSON struct {
	Type         string             `json:"type"`
	Year         *int               `json:"year,omitempty"`
	Month        *int               `json:"month,omitempty"`
	Day          *int               `json:"day,omitempty"`
	DayOfWeek    string             `json:"day_of_week,omitempty"`
	Relation     *DayOfWeekRelation `json:"relation,omitempty"`
	RelativeDate *RelativeDate      `json:"relative_date,omitempty"`
	SpecialDate  *SpecialDate       `json:"special_date,omitempty"`
}

type timeJSON struct {
	Type        string       `json:"type"`
	Hour        int          `json:"hour,omitempty"`
	Minute      int          `json:"minute,omitempty"`
	Second      int          `json:"second,omitempty"`
	Period      *HourPeriod  `json:"period,omitempty"`
	SpecialTime *SpecialTime `json:"special_time,omitempty"`
}

type timeSpanJSON struct {
	Years   float64 `json:"years,omitempty"`
	Months  float64 `json:"months,omitempty"`
	Weeks   float64 `json:"weeks,omitempty"`
	Days    float64 `json:"days,omitempty"`
	Hours   float64 `json:"hours,omitempty"`
	Minutes float64 `json:"minutes,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// MarshalJSON encodes the token as a tagged union:
// {"type":"date_time","date":{"type":"relative",...},"time":{"type":"empty"}}.
func (t *TimerStartToken) MarshalJSON() ([]byte, error) {
	out := tokenJSON{Type: t.Kind(), OriginalInput: t.OriginalInput}

	switch {
	case t.DateTime != nil:
		d, err := encodeDate(t.DateTime.Date)
		if err != nil {
			return nil, err
		}
		tm, err := encodeTime(t.DateTime.Time)
		if err != nil {
			return nil, err
		}
		out.Date, out.Time = d, tm
	case t.TimeSpan != nil:
		s := timeSpanJSON(*t.TimeSpan)
		out.Span = &s
	default:
		return nil, fmt.Errorf("%w: timer start token has no value", ErrArgument)
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds a token without running the parser. Missing fields
// take their zero values; unknown fields are ignored.
func (t *TimerStartToken) UnmarshalJSON(data []byte) error {
	var in tokenJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	decoded := TimerStartToken{OriginalInput: in.OriginalInput}
	switch in.Type {
	case KindDateTime:
		d, err := decodeDate(in.Date)
		if err != nil {
			return err
		}
		tm, err := decodeTime(in.Time)
		if err != nil {
			return err
		}
		decoded.DateTime = &DateTimeToken{Date: d, Time: tm}
	case KindTimeSpan:
		span := TimeSpanToken{}
		if in.Span != nil {
			span = TimeSpanToken(*in.Span)
		}
		decoded.TimeSpan = &span
	default:
		return fmt.Errorf("%w: unknown timer start type %q", ErrFormat, in.Type)
	}

	*t = decoded
	return nil
}

func encodeDate(d DateToken) (*dateJSON, error) {
	switch d := d.(type) {
	case *NormalDateToken:
		return &dateJSON{Type: "normal", Year: d.Year, Month: d.Month, Day: d.Day}, nil
	case *DayOfWeekDateToken:
		out := &dateJSON{Type: "day_of_week", Relation: d.Relation}
		if d.DayOfWeek != nil {
			out.DayOfWeek = strings.ToLower(d.DayOfWeek.String())
		}
		return out, nil
	case *RelativeDateToken:
		r := d.RelativeDate
		return &dateJSON{Type: "relative", RelativeDate: &r}, nil
	case *SpecialDateToken:
		s := d.SpecialDate
		return &dateJSON{Type: "special", SpecialDate: &s}, nil
	case *EmptyDateToken:
		return &dateJSON{Type: "empty"}, nil
	}
	return nil, fmt.Errorf("%w: unknown date token %T", ErrArgument, d)
}

func decodeDate(in *dateJSON) (DateToken, error) {
	if in == nil {
		return &EmptyDateToken{}, nil
	}

	switch in.Type {
	case "normal":
		return &NormalDateToken{Year: in.Year, Month: in.Month, Day: in.Day}, nil
	case "day_of_week":
		d := &DayOfWeekDateToken{Relation: in.Relation}
		if in.DayOfWeek != "" {
			wd, ok := weekdayFromName(in.DayOfWeek)
			if !ok {
				return nil, fmt.Errorf("%w: unknown day of week %q", ErrFormat, in.DayOfWeek)
			}
			d.DayOfWeek = &wd
		}
		if d.Relation == nil {
			r := RelationNext
			d.Relation = &r
		}
		return d, nil
	case "relative":
		d := &RelativeDateToken{}
		if in.RelativeDate != nil {
			d.RelativeDate = *in.RelativeDate
		}
		return d, nil
	case "special":
		d := &SpecialDateToken{}
		if in.SpecialDate != nil {
			d.SpecialDate = *in.SpecialDate
		}
		return d, nil
	case "empty", "":
		return &EmptyDateToken{}, nil
	}
	return nil, fmt.Errorf("%w: unknown date type %q", ErrFormat, in.Type)
}

func encodeTime(t TimeToken) (*timeJSON, error) {
	switch t := t.(type) {
	case *NormalTimeToken:
		p := t.Period
		return &timeJSON{Type: "normal", Hour: t.Hour, Minute: t.Minute, Second: t.Second, Period: &p}, nil
	case *SpecialTimeToken:
		s := t.SpecialTime
		return &timeJSON{Type: "special", SpecialTime: &s}, nil
	case *EmptyTimeToken:
		return &timeJSON{Type: "empty"}, nil
	}
	return nil, fmt.Errorf("%w: unknown time token %T", ErrArgument, t)
}

func decodeTime(in *timeJSON) (TimeToken, error) {
	if in == nil {
		return &EmptyTimeToken{}, nil
	}

	switch in.Type {
	case "normal":
		t := &NormalTimeToken{Hour: in.Hour, Minute: in.Minute, Second: in.Second, Period: PeriodUndefined}
		if in.Period != nil {
			t.Period = *in.Period
		}
		return t, nil
	case "special":
		t := &SpecialTimeToken{}
		if in.SpecialTime != nil {
			t.SpecialTime = *in.SpecialTime
		}
		return t, nil
	case "empty", "":
		return &EmptyTimeToken{}, nil
	}
	return nil, fmt.Errorf("%w: unknown time type %q", ErrFormat, in.Type)
}

func weekdayFromName(name string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), name) {
			return wd, true
		}
	}
	return 0, false
}
