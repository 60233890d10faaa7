package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restoreGlobal(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetupLevels(t *testing.T) {
	restoreGlobal(t)

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		Setup(tt.verbosity, &bytes.Buffer{})
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupTwiceDoesNotDuplicateOutput(t *testing.T) {
	restoreGlobal(t)

	var first, second bytes.Buffer
	Setup(1, &first)
	Setup(1, &second)

	logger := GetLogger("session")
	logger.Info().Msg("trigger recorded")

	assert.Empty(t, first.String())
	assert.Equal(t, 1, strings.Count(second.String(), "trigger recorded"))
	assert.Contains(t, second.String(), `"component":"session"`)
}

func TestLogDuration(t *testing.T) {
	restoreGlobal(t)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	LogDuration(logger, time.Now().Add(-time.Second), "configure")

	assert.Contains(t, buf.String(), "configure")
	assert.Contains(t, buf.String(), "duration")
}
