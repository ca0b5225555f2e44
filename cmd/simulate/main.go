// Package main provides the simulator binary: it loads the rules content
// and two team files, runs one battle between two selector-driven sides,
// and prints the battle log.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cffield/pokesim/internal/config"
	"github.com/cffield/pokesim/internal/game/ability"
	"github.com/cffield/pokesim/internal/game/battle"
	"github.com/cffield/pokesim/internal/game/driver"
	"github.com/cffield/pokesim/internal/game/rng"
	"github.com/cffield/pokesim/internal/game/rules"
	"github.com/cffield/pokesim/internal/game/strategy"
	"github.com/cffield/pokesim/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	teamA := flag.String("team-a", "content/teams/example-a.yaml", "path to side 0's team file")
	teamB := flag.String("team-b", "content/teams/example-b.yaml", "path to side 1's team file")
	seed := flag.Int64("seed", 0, "override the configured seed (implies deterministic)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// Load the rules content.
	contentStart := time.Now()
	moves, err := rules.LoadMoves(filepath.Join(cfg.Simulation.DataDir, "moves"))
	if err != nil {
		logger.Fatal("loading moves", zap.Error(err))
	}
	abilities, err := rules.LoadAbilities(filepath.Join(cfg.Simulation.DataDir, "abilities"))
	if err != nil {
		logger.Fatal("loading abilities", zap.Error(err))
	}
	rs, err := rules.LoadRuleset(filepath.Join(cfg.Simulation.DataDir, cfg.Simulation.Ruleset))
	if err != nil {
		logger.Fatal("loading ruleset", zap.Error(err))
	}
	logger.Info("rules content loaded",
		zap.Int("moves", moves.Len()),
		zap.Int("abilities", abilities.Len()),
		zap.String("ruleset", cfg.Simulation.Ruleset),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	// Build the teams.
	teams := [2]*battle.Team{}
	for i, path := range []string{*teamA, *teamB} {
		rec, err := battle.LoadTeamRecord(path)
		if err != nil {
			logger.Fatal("loading team", zap.String("path", path), zap.Error(err))
		}
		team, err := battle.BuildTeam(rec, moves, abilities)
		if err != nil {
			logger.Fatal("building team", zap.String("path", path), zap.Error(err))
		}
		teams[i] = team
	}

	// Pick the random source.
	var src rng.Source
	switch {
	case *seed != 0:
		src = rng.NewSeeded(*seed)
	case cfg.Simulation.Deterministic:
		src = rng.NewSeeded(cfg.Simulation.Seed)
	default:
		src = rng.NewCryptoSource()
	}
	src = rng.NewLogged(src, logger)

	hooks := ability.Builtin()
	state, err := battle.NewState(teams[0], teams[1], battle.NewFieldState())
	if err != nil {
		logger.Fatal("assembling battle state", zap.Error(err))
	}
	resolver := battle.NewResolver(moves, hooks, rs, src, logger)
	selector := strategy.NewSelector(moves, rs, resolver, logger)

	b := driver.New(state, resolver, [2]driver.ActionProvider{selector, selector}, cfg.Simulation.MaxTurns, logger)
	logger.Info("battle starting",
		zap.String("battle_id", b.ID().String()),
		zap.String("team_a", teams[0].Name),
		zap.String("team_b", teams[1].Name),
	)

	result, err := b.Run()
	if err != nil {
		logger.Fatal("running battle", zap.Error(err))
	}

	for _, entry := range result.Log {
		fmt.Println(entry)
	}

	outcome := "draw"
	if result.Winner != driver.NoWinner {
		outcome = teams[result.Winner].Name
	}
	logger.Info("battle complete",
		zap.String("battle_id", result.ID.String()),
		zap.String("outcome", outcome),
		zap.Int("turns", result.Turns),
		zap.Duration("elapsed", time.Since(start)),
	)
}
