// Package config loads the engine's optional runtime knobs. The default
// configuration is self-contained and environment variables are never
// required, so every field here has a working zero-config default; a
// TOML file and env vars only override.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pbnjay/memory"
)

// Config bundles every knob the Turn Controller and its arenas need.
type Config struct {
	// FirstTurnBudgetMs / SubsequentBudgetMs are the per-turn wall
	// clock budgets in milliseconds, measured from program start.
	FirstTurnBudgetMs  int64 `toml:"first_turn_budget_ms"`
	SubsequentBudgetMs int64 `toml:"subsequent_budget_ms"`
	SafetyMarginMs     int64 `toml:"safety_margin_ms"`

	// NodeCapacity / MoveCapacity size the MCTS arenas. The defaults are
	// derived at load time from the host's available memory (see
	// defaultCapacities) rather than hardcoded, since the engine's
	// memory ceiling is a range, not a single number.
	NodeCapacity int `toml:"node_capacity"`
	MoveCapacity int `toml:"move_capacity"`

	// Seed feeds the single deterministic PRNG stream used for all
	// random choices during search. A zero value means "derive from
	// wall-clock at startup", since a fixed zero-seed default would
	// make every process behave identically, which is not useful
	// outside of reproducibility tests.
	Seed int64 `toml:"seed"`

	// KeepAlive switches the protocol loop between the one-shot and
	// resident-process forms.
	KeepAlive bool `toml:"keep_alive"`
}

// Default returns a self-contained Config with no file or environment
// input.
func Default() Config {
	nodeCap, moveCap := defaultCapacities()
	return Config{
		FirstTurnBudgetMs:  900,
		SubsequentBudgetMs: 950,
		SafetyMarginMs:     80,
		NodeCapacity:       nodeCap,
		MoveCapacity:       moveCap,
		Seed:               0,
		KeepAlive:          false,
	}
}

// defaultCapacities sizes the node and move arenas from the host's total
// physical memory, staying well inside a few hundred MB. Each
// mcts.Node is small (a handful of fields, no pointers into other
// structures besides arena refs), so a conservative fixed per-node byte
// estimate is used; this package does not import pkg/mcts. Each node is
// budgeted together with its share of the move arena (movesPerNode
// moves).
func defaultCapacities() (nodeCapacity, moveCapacity int) {
	const (
		perNodeBytes   = 48
		perMoveBytes   = 4
		movesPerNode   = 8
		targetFraction = 4 // use roughly 1/4 of total RAM, capped below
		minNodes       = 1 << 16
		maxNodes       = 1 << 21
	)

	total := memory.TotalMemory()
	budget := total / targetFraction
	if budget == 0 {
		// memory.TotalMemory returns 0 when it cannot introspect the
		// host (e.g. inside certain sandboxes); fall back to a
		// conservative fixed budget rather than allocating nothing.
		budget = 256 << 20
	}

	nodes := int(budget / (perNodeBytes + movesPerNode*perMoveBytes))
	if nodes < minNodes {
		nodes = minNodes
	}
	if nodes > maxNodes {
		nodes = maxNodes
	}
	return nodes, nodes * movesPerNode
}

// Load reads defaults, then overlays a TOML file at path (if non-empty
// and it exists), then overlays a handful of environment variables. Any
// layer may be absent; absence is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets a harness tweak behavior without a config file:
// random seed and time budget overrides.
func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("AMAZONS_SEED"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v, ok := os.LookupEnv("AMAZONS_KEEP_ALIVE"); ok {
		cfg.KeepAlive = v == "1" || v == "true"
	}
	if v, ok := os.LookupEnv("AMAZONS_SUBSEQUENT_BUDGET_MS"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.SubsequentBudgetMs = n
		}
	}
}

// FirstTurnBudget and SubsequentBudget convert the millisecond fields to
// time.Duration for pkg/turn.Budgets.
func (c Config) FirstTurnBudget() time.Duration  { return time.Duration(c.FirstTurnBudgetMs) * time.Millisecond }
func (c Config) SubsequentBudget() time.Duration {
	return time.Duration(c.SubsequentBudgetMs) * time.Millisecond
}
func (c Config) SafetyMargin() time.Duration { return time.Duration(c.SafetyMarginMs) * time.Millisecond }

// SeedOrClock returns Seed if non-zero, otherwise a wall-clock-derived
// seed; used at startup only, never inside the search loop.
func (c Config) SeedOrClock(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
