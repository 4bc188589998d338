package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flyrell/hourglass/internal/parsing"
)

func execPatterns(t *testing.T, culture, dateFlag, timeFlag string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	cmd := patternsCmd
	cmd.SetOut(stdout)

	err := runPatterns(cmd, mustLocale(t, culture), dateFlag, timeFlag)
	return stdout.String(), err
}

func TestPatternsListsEveryCandidate(t *testing.T) {
	stdout, err := execPatterns(t, "en-US", "", "")
	require.NoError(t, err)

	cands, err := parsing.Candidates(mustLocale(t, "en-US"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "normal + empty")
	assert.Contains(t, stdout, cands[0].Pattern)
	assert.Contains(t, stdout, "for en-US")
	assert.NotContains(t, stdout, "empty + empty")
}

func TestPatternsFilter(t *testing.T) {
	stdout, err := execPatterns(t, "en-US", "relative", "special")
	require.NoError(t, err)

	// two relative dates by two special times, in both orders
	assert.Equal(t, 8, strings.Count(stdout, "relative + special"))
	assert.Contains(t, stdout, "8 of ")
	assert.NotContains(t, stdout, "normal + ")
}

func TestPatternsFilterNoMatch(t *testing.T) {
	stdout, err := execPatterns(t, "en-US", "empty", "empty")

	require.NoError(t, err)
	assert.Contains(t, stdout, "no patterns found")
}
