// Command amazonsbot is the process entry point: it wires resource
// limits, configuration, logging, the Turn Controller, and the
// line-oriented protocol together, then drives the turn loop to
// completion.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	_ "go.uber.org/automaxprocs"

	"github.com/nsavage/amazons-engine/internal/config"
	"github.com/nsavage/amazons-engine/internal/diagnostics"
	"github.com/nsavage/amazons-engine/internal/protocol"
	"github.com/nsavage/amazons-engine/pkg/mcts"
	"github.com/nsavage/amazons-engine/pkg/turn"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	verbose := flag.Bool("verbose", false, "enable debug logging and search progress rendering")
	flag.Parse()

	log := diagnostics.NewLogger(*verbose)

	// A few hundred MB is a soft-memory target, not a container cgroup
	// limit; SetGoMemLimitWithOpts only takes effect under cgroups v2,
	// and is a harmless no-op everywhere else.
	if _, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
	); err != nil {
		log.Debug().Err(err).Msg("no cgroup memory limit detected, using Go defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	programStart := time.Now()

	controller := turn.New(
		mcts.Config{
			NodeCapacity: cfg.NodeCapacity,
			MoveCapacity: cfg.MoveCapacity,
			Seed:         cfg.SeedOrClock(programStart),
		},
		turn.Budgets{
			FirstTurn:    cfg.FirstTurnBudget(),
			Subsequent:   cfg.SubsequentBudget(),
			SafetyMargin: cfg.SafetyMargin(),
		},
	)
	if *verbose {
		controller.SetListener(diagnostics.Listener(log, diagnostics.NewRenderer(os.Stderr)))
	}

	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)

	turnIn, err := protocol.ReadTurn(in)
	if err != nil {
		log.Error().Err(err).Msg("malformed input")
		os.Exit(1)
	}

	history := turnIn.History
	turnID := turnIn.TurnID

	for {
		move, stats := controller.PlayTurn(history, turnID, programStart)
		log.Info().
			Int("turn", turnID).
			Str("move", protocol.FormatMoveLine(move)).
			Int("cycles", stats.Cycles).
			Bool("no_expand", stats.NoExpand).
			Msg("turn complete")

		if err := protocol.WriteMove(out, move, cfg.KeepAlive); err != nil {
			log.Error().Err(err).Msg("failed to write move")
			os.Exit(1)
		}

		if !cfg.KeepAlive {
			return
		}
		if move.IsNoMove() {
			return
		}

		opponentMove, err := protocol.ReadResponse(in)
		if err != nil {
			// EOF here means the harness closed the connection, which
			// is the normal way a keep-alive game ends.
			return
		}

		history = append(history, move, opponentMove)
		turnID++
	}
}

func init() {
	// On a flag parsing error, print a one-line usage summary followed
	// by the flag defaults to stderr.
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-config file.toml] [-verbose]\n", os.Args[0])
		flag.PrintDefaults()
	}
}
