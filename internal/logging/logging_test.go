package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level     string
		wantLevel zapcore.Level
	}{
		{level: "", wantLevel: zapcore.InfoLevel},
		{level: "info", wantLevel: zapcore.InfoLevel},
		{level: "WARN", wantLevel: zapcore.WarnLevel},
		{level: "error", wantLevel: zapcore.ErrorLevel},
		{level: "debug", wantLevel: zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("verbose")
	assert.ErrorContains(t, err, `invalid log level "verbose"`)
}
