package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/hourglass/internal/locale"
	"github.com/Flyrell/hourglass/internal/parsing"
	"github.com/Flyrell/hourglass/internal/recent"
)

// fixedNow is a Monday afternoon.
func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
}

func mustLocale(t *testing.T, name string) *locale.Locale {
	t.Helper()
	l, err := locale.Lookup(name)
	require.NoError(t, err)
	return l
}

func execParse(t *testing.T, culture, dataDir, input, startFlag string, asJSON, remember bool) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	cmd := parseCmd
	cmd.SetOut(stdout)

	err := runParse(cmd, parsing.NewParser(), mustLocale(t, culture), dataDir, input, startFlag, asJSON, remember, fixedNow)
	return stdout.String(), err
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		culture string
		input   string
		start   string
		want    []string
	}{
		{
			name:    "duration",
			culture: "en-US",
			input:   "10m",
			want:    []string{"time_span", "10 minutes", "Mon 2024-06-10 14:10:00", "in 10m0s"},
		},
		{
			name:    "weekday at time",
			culture: "en-US",
			input:   "next friday at 5pm",
			want:    []string{"date_time", "until Friday at 5 pm", "Fri 2024-06-14 17:00:00"},
		},
		{
			name:    "day first culture",
			culture: "en-GB",
			input:   "03/04/2025",
			want:    []string{"date_time", "Thu 2025-04-03 00:00:00"},
		},
		{
			name:    "explicit start",
			culture: "en-US",
			input:   "tomorrow",
			start:   "2025-01-15 09:00",
			want:    []string{"until tomorrow", "Thu 2025-01-16 00:00:00", "in 15h0m0s"},
		},
		{
			name:    "rfc 3339 start",
			culture: "en-US",
			input:   "1h 30m",
			start:   "2025-01-15T09:00:00Z",
			want:    []string{"1 hour 30 minutes", "Wed 2025-01-15 10:30:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, err := execParse(t, tt.culture, t.TempDir(), tt.input, tt.start, false, false)

			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	stdout, err := execParse(t, "en-US", t.TempDir(), "christmas", "", true, false)
	require.NoError(t, err)

	var result parseResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	require.NotNil(t, result.Token)
	assert.Equal(t, parsing.KindDateTime, result.Token.Kind())
	assert.Equal(t, "christmas", result.Token.OriginalInput)
	assert.Equal(t, "until Christmas Day", result.Text)
	assert.True(t, result.Start.Equal(fixedNow()))
	assert.True(t, result.End.Equal(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestParseRemember(t *testing.T) {
	dataDir := t.TempDir()

	_, err := execParse(t, "en-US", dataDir, "25m", "", false, true)
	require.NoError(t, err)
	_, err = execParse(t, "en-US", dataDir, "friday", "", false, false)
	require.NoError(t, err)

	records, err := recent.NewStore(dataDir).List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "25m", records[0].Token.OriginalInput)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		start  string
		target error
	}{
		{"unreadable input", "banana bread", "", parsing.ErrFormat},
		{"time already passed today", "today at 9am", "", parsing.ErrInvalidOperation},
		{"bad start", "10m", "next tuesday", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execParse(t, "en-US", t.TempDir(), tt.input, tt.start, false, false)

			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestParseStart(t *testing.T) {
	got, err := parseStart("2025-01-15 09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC), got)

	got, err = parseStart("2025-01-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = parseStart("yesterday", time.UTC)
	assert.Error(t, err)
}
