package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/environment"
	"github.com/dmitrymomot/portfolio/pkg/logger"
)

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("development uses text at debug", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(environment.Development, "portfolio"),
			logger.WithOutput(buf),
		)
		log.Debug("msg")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=portfolio")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production uses json at info", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(environment.Production, "portfolio"),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		log.Info("msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "msg", entry["msg"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestWithFormat_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(environment.LoggerExtractor(), nil),
	)

	ctx := environment.WithContext(context.Background(), environment.Staging)
	log.With(logger.Component("test")).InfoContext(ctx, "msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "test", entry["component"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "boom", logger.Error(errors.New("boom")).Value.String())
	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	assert.Equal(t, "errors", logger.Errors(nil, errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.CardID(""))
	assert.Equal(t, "card_id", logger.CardID("card-1").Key)
	assert.Equal(t, slog.Attr{}, logger.NotificationKind(nil))
	assert.Equal(t, "outcome", logger.Outcome("sent").Key)
	assert.Equal(t, slog.Attr{}, logger.ClientIP(""))
	assert.Equal(t, "component", logger.Component("card").Key)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { logger.Discard().Error("dropped") })
}
