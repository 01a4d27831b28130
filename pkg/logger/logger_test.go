package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"", zapcore.WarnLevel, zapcore.InfoLevel},
		{"chatty", zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		core := New(tt.level).Core()
		if !core.Enabled(tt.enabled) {
			t.Errorf("level %q: %v should be enabled", tt.level, tt.enabled)
		}
		if core.Enabled(tt.muted) {
			t.Errorf("level %q: %v should be muted", tt.level, tt.muted)
		}
	}
}
