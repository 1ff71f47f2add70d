package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/core/logger"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	log.Debug("hidden")
	assert.Empty(t, buf.String(), "debug should be filtered at default level")
}

func TestNew_JSONWithAppName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormat(),
		logger.WithLevel(slog.LevelDebug),
		logger.WithAppName("freshmart"),
	)

	log.Debug("session loaded", logger.Component("session"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "freshmart", record["app"])
	assert.Equal(t, "session", record["component"])
	assert.Equal(t, "session loaded", record["msg"])
}

func TestError_NilSafety(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}

func TestIdentifierAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.SessionID(uuid.Nil))
	assert.Equal(t, slog.Attr{}, logger.UserID(uuid.Nil))
	assert.Equal(t, slog.Attr{}, logger.OrderNumber(""))

	id := uuid.New()
	attr := logger.SessionID(id)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, id.String(), attr.Value.String())
}

func TestElapsed(t *testing.T) {
	t.Parallel()

	attr := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), time.Second)
}
