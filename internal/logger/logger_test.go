package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"admin_password", "hunter2", "gem_id", "abc", "DATABASE_URL", "mongodb://u:p@h", "dangling"})
	assert.Equal(t, []interface{}{
		"admin_password", "[REDACTED]",
		"gem_id", "abc",
		"DATABASE_URL", "[REDACTED]",
		"dangling",
	}, out)
}

func TestLoggerRedactsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("request_id", "r-1").Info("login attempt", "token", "admin-token", "status", 401)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "r-1", ctx["request_id"])
		assert.Equal(t, "[REDACTED]", ctx["token"])
		assert.EqualValues(t, 401, ctx["status"])
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.SugaredLogger)
	}
}
