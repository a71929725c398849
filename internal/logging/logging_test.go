package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitializeFileOutput(t *testing.T) {
	defer InitializeDefault()

	path := filepath.Join(t.TempDir(), "defect-cost.log")
	if err := Initialize(Config{Level: "info", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Info("dataset archived", zap.String("archive", "report_20260823.csv"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "dataset archived") {
		t.Errorf("log file missing message:\n%s", out)
	}
	if !strings.Contains(out, "report_20260823.csv") {
		t.Errorf("log file missing field:\n%s", out)
	}
}

func TestInitializeLevelFiltering(t *testing.T) {
	defer InitializeDefault()

	path := filepath.Join(t.TempDir(), "defect-cost.log")
	if err := Initialize(Config{Level: "warn", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Debug("below threshold")
	Info("below threshold")
	Warn("at threshold")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "below threshold") {
		t.Errorf("filtered levels leaked:\n%s", data)
	}
	if !strings.Contains(string(data), "at threshold") {
		t.Errorf("warn entry missing:\n%s", data)
	}
}

func TestInitializeBadLevelFallsBack(t *testing.T) {
	defer InitializeDefault()

	if err := Initialize(Config{Level: "chatty", Format: "console", Output: "stderr"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger not set")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
