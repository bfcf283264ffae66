package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerFallsBackToNop(t *testing.T) {
	require.NotNil(t, Logger())
	require.NotPanics(t, func() {
		Info("noop before init")
	})
}

func TestInitAcceptsLevels(t *testing.T) {
	require.NoError(t, Init("debug"))
	require.NotNil(t, Logger())

	// Unknown levels fall back to info rather than failing start-up.
	require.NoError(t, Init("chatty"))

	child := WithModule("store")
	require.NotNil(t, child)
}
