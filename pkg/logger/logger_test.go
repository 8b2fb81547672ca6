package logger

import (
	"testing"

	"go.uber.org/zap"
)

// Library packages log through these functions unconditionally, so they
// must be safe before Init runs (and in tests, which never call Init).
func TestLoggingSafeBeforeInit(t *testing.T) {
	Log = nil

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("logging before Init panicked: %v", r)
		}
	}()

	Info("info", zap.String("k", "v"))
	Warn("warn")
	Error("error")
	Debug("debug")
	Sync()
}

func TestGetLoggerNeverNil(t *testing.T) {
	Log = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil before Init")
	}
}

func TestInitSetsGlobal(t *testing.T) {
	if err := Init("info", "json", "stdout"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { Log = nil }()

	if Log == nil {
		t.Fatal("Init did not set the global logger")
	}
	if GetLogger() != Log {
		t.Error("GetLogger should return the initialized logger")
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init("verbose", "json", "stdout"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
