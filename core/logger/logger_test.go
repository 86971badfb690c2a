package logger_test

import (
	"testing"

	"packetgen/core/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    logger.Config
		debug  bool
		warnOn bool
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}, true, true},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}, false, true},
		{"Warn", logger.Config{Level: "warn", Format: "console"}, false, true},
		{"UnknownLevelFallsBackToInfo", logger.Config{Level: "chatty", Format: "json"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.warnOn, l.Core().Enabled(zapcore.WarnLevel))
		})
	}
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	id := logger.NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logger.WithRunID(base, id).Info("generated")
	logger.WithRunID(base, "").Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}
