package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsContactDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Info("introduction sent", "vote_id", "v1", "recipients", []string{"a@b.c"}, "lp_email", "lp@fund.com")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "v1", fields["vote_id"])
		assert.Equal(t, "[REDACTED]", fields["recipients"])
		assert.Equal(t, "[REDACTED]", fields["lp_email"])
	}
}

func TestSanitizeOddKeyValues(t *testing.T) {
	out := sanitizeKVs([]interface{}{"deal_id", "d1", "dangling"})
	assert.Equal(t, []interface{}{"deal_id", "d1", "dangling"}, out)
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	l.Debug("debug")
	l.Warn("warn", "k", "v")
	l.Sync()
}
