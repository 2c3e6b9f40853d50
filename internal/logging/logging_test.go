package logging

import "testing"

func TestLogLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(42), "unknown(42)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestGetLevelDefault(t *testing.T) {
	// Level is initialized once per process; with no LOG_LEVEL or DEBUG
	// set in the test environment it must resolve to a valid level.
	level := GetLevel()
	if level < LevelDebug || level > LevelError {
		t.Errorf("GetLevel() returned out-of-range level %d", level)
	}
}
