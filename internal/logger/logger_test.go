package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordcards/internal/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
	assert.False(t, log.Enabled(logger.DEBUG))
	assert.True(t, log.Enabled(logger.ERROR))
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithFields(map[string]any{"zeta": 1, "alpha": 2}).
		WithPrefix("remote").
		WithError(errors.New("boom"))

	log.Info("loaded")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[remote]")
	assert.True(t, strings.HasSuffix(line, "alpha=2 error=boom zeta=1"), line)
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).WithField("client_id", "c1")

	ctx := logger.NewContext(context.Background(), log)
	logger.FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), "client_id=c1")
	assert.Equal(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("ERROR"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON)).
		WithPrefix("scheduler").
		WithField("evicted", 3).
		WithError(errors.New("disk full"))

	log.Warn("sweep %s", "done")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "sweep done", rec["msg"])
	assert.Equal(t, "scheduler", rec["component"])
	assert.Equal(t, "disk full", rec["error"])
	assert.EqualValues(t, 3, rec["evicted"])
	assert.Contains(t, rec["caller"], "logger_test.go:")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, logger.FormatJSON, logger.ParseFormat(" JSON "))
	assert.Equal(t, logger.FormatText, logger.ParseFormat("text"))
	assert.Equal(t, logger.FormatText, logger.ParseFormat(""))
}
