package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlwaysYes(t *testing.T) {
	ok, err := AlwaysYes()("Forget everything?")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmFromFlag(t *testing.T) {
	ok, err := confirmFromFlag(true)("Forget everything?")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NotNil(t, confirmFromFlag(false))
}
