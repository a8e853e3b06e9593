package config

import (
	"os"
	"testing"
	"time"
)

func TestDefaultIsSelfContained(t *testing.T) {
	cfg := Default()
	if cfg.NodeCapacity <= 0 || cfg.MoveCapacity <= 0 {
		t.Fatalf("default capacities must be positive, got node=%d move=%d", cfg.NodeCapacity, cfg.MoveCapacity)
	}
	if cfg.FirstTurnBudgetMs <= 0 || cfg.SubsequentBudgetMs <= 0 {
		t.Fatal("default budgets must be positive")
	}
}

func TestLoadWithMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected Load with a missing file to equal Default()")
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	f, err := os.CreateTemp("", "amazons-config-*.toml")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString("seed = 42\nkeep_alive = true\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Close()

	cfg, err := Load(f.Name())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("Seed = %d, want 42", cfg.Seed)
	}
	if !cfg.KeepAlive {
		t.Fatal("KeepAlive = false, want true")
	}
}

func TestSeedOrClockUsesConfiguredSeedWhenNonZero(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	if got := cfg.SeedOrClock(time.Now()); got != 7 {
		t.Fatalf("SeedOrClock = %d, want 7", got)
	}
}

func TestSeedOrClockDerivesFromClockWhenZero(t *testing.T) {
	cfg := Default()
	cfg.Seed = 0
	now := time.Now()
	if got := cfg.SeedOrClock(now); got != now.UnixNano() {
		t.Fatalf("SeedOrClock = %d, want %d", got, now.UnixNano())
	}
}
