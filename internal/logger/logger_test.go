package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersBeforeInit(t *testing.T) {
	// Must not panic without a logger installed.
	Debug("debug", "k", 1)
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hexlens.log")
	if err := Init(path, true); err != nil {
		t.Fatal(err)
	}
	Debug("source bound", "length", 32)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "logger initialized") {
		t.Errorf("expected init message in log, got %q", out)
	}
	if !strings.Contains(out, "source bound") {
		t.Errorf("expected debug message in log, got %q", out)
	}
}

func TestInitInfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexlens.log")
	if err := Init(path, false); err != nil {
		t.Fatal(err)
	}
	Debug("hidden message")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden message") {
		t.Error("expected debug message to be filtered at info level")
	}
}
