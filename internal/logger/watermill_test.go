package logger

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatermillAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewWatermillAdapter(zap.New(core))

	adapter.With(watermill.LogFields{"topic": "failed_items"}).
		Error("handler failed", errors.New("boom"), watermill.LogFields{"attempt": 1})
	adapter.Trace("tick", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "failed_items", ctx["topic"])
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 1, ctx["attempt"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}
