package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// withObservedLogger swaps the package logger for an in-memory one and
// restores it when the test ends
func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	previous := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = previous })
	return logs
}

func TestLogNodeRead(t *testing.T) {
	logs := withObservedLogger(t)

	LogNodeRead("192.168.1.14", "netRemote.sys.power", true, 12*time.Millisecond)

	entries := logs.FilterMessage("Node read").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["host"] != "192.168.1.14" {
		t.Errorf("host = %v", fields["host"])
	}
	if fields["node"] != "netRemote.sys.power" {
		t.Errorf("node = %v", fields["node"])
	}
	if fields["supported"] != true {
		t.Errorf("supported = %v", fields["supported"])
	}
	if fields["elapsed"] != 12*time.Millisecond {
		t.Errorf("elapsed = %v", fields["elapsed"])
	}
}

func TestLogNodeWrite(t *testing.T) {
	logs := withObservedLogger(t)

	LogNodeWrite("192.168.1.14", "netRemote.sys.audio.volume", "12", false)

	entries := logs.FilterMessage("Node write").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["value"] != "12" {
		t.Errorf("value = %v", fields["value"])
	}
	if fields["accepted"] != false {
		t.Errorf("accepted = %v", fields["accepted"])
	}
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	previous := logger
	t.Cleanup(func() { logger = previous })

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("logger enabled at error level, want silent nop logger")
	}
}
