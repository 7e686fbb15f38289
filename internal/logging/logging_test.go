package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	if l == nil || l.SugaredLogger == nil {
		t.Fatal("OrNop(nil) returned an unusable logger")
	}
	l.Infow("discarded", "key", "value")

	verbose := NewLogger(true, "warn")
	if OrNop(verbose) != verbose {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"default", false, "", false, true},
		{"configured debug", false, "debug", true, true},
		{"configured warn", false, "warn", false, false},
		{"verbose overrides config", true, "warn", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := NewLogger(tt.verbose, tt.level).Desugar().Core()
			if got := core.Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := core.Enabled(zapcore.InfoLevel); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
