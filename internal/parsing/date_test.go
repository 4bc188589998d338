package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func weekdayp(wd time.Weekday) *time.Weekday { return &wd }

func relationp(r DayOfWeekRelation) *DayOfWeekRelation { return &r }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		name  string
		token DateToken
		want  bool
	}{
		{"day only", &NormalDateToken{Day: intp(5)}, true},
		{"month only", &NormalDateToken{Month: intp(3)}, true},
		{"year only", &NormalDateToken{Year: intp(2026)}, true},
		{"full date", &NormalDateToken{Year: intp(2025), Month: intp(12), Day: intp(25)}, true},
		{"feb 29 without year", &NormalDateToken{Month: intp(2), Day: intp(29)}, true},
		{"feb 29 in common year", &NormalDateToken{Year: intp(2025), Month: intp(2), Day: intp(29)}, false},
		{"april 31", &NormalDateToken{Month: intp(4), Day: intp(31)}, false},
		{"month 13", &NormalDateToken{Month: intp(13)}, false},
		{"day 0", &NormalDateToken{Day: intp(0)}, false},
		{"nothing set", &NormalDateToken{}, false},
		{"year and day without month", &NormalDateToken{Year: intp(2025), Day: intp(5)}, false},
		{"weekday", &DayOfWeekDateToken{DayOfWeek: weekdayp(time.Friday), Relation: relationp(RelationNext)}, true},
		{"weekday without relation", &DayOfWeekDateToken{DayOfWeek: weekdayp(time.Friday)}, false},
		{"relation without weekday", &DayOfWeekDateToken{Relation: relationp(RelationNext)}, false},
		{"bad weekday", &DayOfWeekDateToken{DayOfWeek: weekdayp(9), Relation: relationp(RelationNext)}, false},
		{"tomorrow", &RelativeDateToken{RelativeDate: RelativeTomorrow}, true},
		{"bad relative date", &RelativeDateToken{RelativeDate: 7}, false},
		{"christmas", &SpecialDateToken{SpecialDate: ChristmasDay}, true},
		{"bad special date", &SpecialDateToken{SpecialDate: -1}, false},
		{"empty", &EmptyDateToken{}, true},
		{"nil interface", nil, false},
		{"nil pointer", (*NormalDateToken)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.token))
		})
	}
}

func TestResolveNormalDate(t *testing.T) {
	// Monday, April 15, 2024
	now := time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		token     *NormalDateToken
		inclusive bool
		want      time.Time
		wantErr   bool
	}{
		{name: "later day this month", token: &NormalDateToken{Day: intp(20)}, inclusive: true, want: day(2024, 4, 20)},
		{name: "earlier day rolls to next month", token: &NormalDateToken{Day: intp(10)}, inclusive: true, want: day(2024, 5, 10)},
		{name: "today inclusive", token: &NormalDateToken{Day: intp(15)}, inclusive: true, want: day(2024, 4, 15)},
		{name: "today exclusive", token: &NormalDateToken{Day: intp(15)}, inclusive: false, want: day(2024, 5, 15)},
		{name: "31st skips short month", token: &NormalDateToken{Day: intp(31)}, inclusive: true, want: day(2024, 5, 31)},
		{name: "month and day later this year", token: &NormalDateToken{Month: intp(12), Day: intp(25)}, inclusive: true, want: day(2024, 12, 25)},
		{name: "month and day rolls to next year", token: &NormalDateToken{Month: intp(1), Day: intp(2)}, inclusive: true, want: day(2025, 1, 2)},
		{name: "month only starts on the first", token: &NormalDateToken{Month: intp(6)}, inclusive: true, want: day(2024, 6, 1)},
		{name: "past month only rolls", token: &NormalDateToken{Month: intp(3)}, inclusive: true, want: day(2025, 3, 1)},
		{name: "year only", token: &NormalDateToken{Year: intp(2026)}, inclusive: true, want: day(2026, 1, 1)},
		{name: "month and year", token: &NormalDateToken{Year: intp(2025), Month: intp(7)}, inclusive: true, want: day(2025, 7, 1)},
		{name: "full date in the past is kept", token: &NormalDateToken{Year: intp(2020), Month: intp(1), Day: intp(1)}, inclusive: true, want: day(2020, 1, 1)},
		{name: "invalid", token: &NormalDateToken{}, inclusive: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(tt.token, now, tt.inclusive)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNormalDateLeapDay(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	got, err := ResolveDate(&NormalDateToken{Month: intp(2), Day: intp(29)}, now, true)
	require.NoError(t, err)
	assert.Equal(t, day(2028, 2, 29), got)
}

func TestResolveDayOfWeekDate(t *testing.T) {
	// Monday, June 10, 2024
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		weekday  time.Weekday
		relation DayOfWeekRelation
		want     time.Time
	}{
		{"friday", time.Friday, RelationNext, day(2024, 6, 14)},
		{"monday is a week out", time.Monday, RelationNext, day(2024, 6, 17)},
		{"friday after next", time.Friday, RelationAfterNext, day(2024, 6, 21)},
		{"friday next week", time.Friday, RelationNextWeek, day(2024, 6, 21)},
		{"sunday next week", time.Sunday, RelationNextWeek, day(2024, 6, 16)},
		{"tuesday next week", time.Tuesday, RelationNextWeek, day(2024, 6, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &DayOfWeekDateToken{DayOfWeek: weekdayp(tt.weekday), Relation: relationp(tt.relation)}
			got, err := ResolveDate(token, now, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDayOfWeekNeverSameDay(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		now := start.AddDate(0, 0, offset).Add(9 * time.Hour)
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			for _, rel := range []DayOfWeekRelation{RelationNext, RelationAfterNext, RelationNextWeek} {
				for _, inclusive := range []bool{true, false} {
					token := &DayOfWeekDateToken{DayOfWeek: weekdayp(wd), Relation: relationp(rel)}
					got, err := ResolveDate(token, now, inclusive)
					require.NoError(t, err)
					assert.True(t, got.After(truncateToDay(now)), "%s %s from %s", wd, rel, now.Weekday())
					assert.Equal(t, wd, got.Weekday())
				}
			}
		}
	}
}

func TestResolveRelativeDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	got, err := ResolveDate(&RelativeDateToken{RelativeDate: RelativeToday}, now, false)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 10), got)

	got, err = ResolveDate(&RelativeDateToken{RelativeDate: RelativeTomorrow}, now, true)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 11), got)
}

func TestResolveSpecialDate(t *testing.T) {
	tests := []struct {
		name      string
		special   SpecialDate
		now       time.Time
		inclusive bool
		want      time.Time
	}{
		{"christmas ahead", ChristmasDay, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), true, day(2024, 12, 25)},
		{"christmas passed", ChristmasDay, time.Date(2024, 12, 26, 9, 0, 0, 0, time.UTC), true, day(2025, 12, 25)},
		{"christmas today inclusive", ChristmasDay, time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC), true, day(2024, 12, 25)},
		{"christmas today exclusive", ChristmasDay, time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC), false, day(2025, 12, 25)},
		{"new year", NewYear, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), true, day(2025, 1, 1)},
		{"new years eve", NewYearsEve, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), false, day(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(&SpecialDateToken{SpecialDate: tt.special}, tt.now, tt.inclusive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEmptyDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	got, err := ResolveDate(&EmptyDateToken{}, now, true)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 10), got)

	got, err = ResolveDate(&EmptyDateToken{}, now, false)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 11), got)
}

func TestFormatDate(t *testing.T) {
	us, gb := mustLocale(t, "en-US"), mustLocale(t, "en-GB")

	tests := []struct {
		name  string
		token DateToken
		p     Provider
		want  string
	}{
		{"day only", &NormalDateToken{Day: intp(1)}, us, "the 1st"},
		{"day only 12th", &NormalDateToken{Day: intp(12)}, us, "the 12th"},
		{"day only 22nd", &NormalDateToken{Day: intp(22)}, us, "the 22nd"},
		{"month and day us", &NormalDateToken{Month: intp(12), Day: intp(25)}, us, "December 25"},
		{"month and day gb", &NormalDateToken{Month: intp(12), Day: intp(25)}, gb, "25 December"},
		{"full date us", &NormalDateToken{Year: intp(2025), Month: intp(12), Day: intp(25)}, us, "December 25, 2025"},
		{"full date gb", &NormalDateToken{Year: intp(2025), Month: intp(12), Day: intp(25)}, gb, "25 December 2025"},
		{"month only", &NormalDateToken{Month: intp(3)}, us, "March"},
		{"month and year", &NormalDateToken{Year: intp(2026), Month: intp(3)}, us, "March 2026"},
		{"year only", &NormalDateToken{Year: intp(2026)}, us, "2026"},
		{"weekday", &DayOfWeekDateToken{DayOfWeek: weekdayp(time.Friday), Relation: relationp(RelationNext)}, us, "Friday"},
		{"weekday after next", &DayOfWeekDateToken{DayOfWeek: weekdayp(time.Friday), Relation: relationp(RelationAfterNext)}, us, "Friday after next"},
		{"weekday next week", &DayOfWeekDateToken{DayOfWeek: weekdayp(time.Friday), Relation: relationp(RelationNextWeek)}, us, "Friday next week"},
		{"tomorrow", &RelativeDateToken{RelativeDate: RelativeTomorrow}, us, "tomorrow"},
		{"christmas", &SpecialDateToken{SpecialDate: ChristmasDay}, us, "Christmas Day"},
		{"empty", &EmptyDateToken{}, us, ""},
		{"invalid falls back to type", &NormalDateToken{}, us, "*parsing.NormalDateToken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.token, tt.p))
		})
	}
}
