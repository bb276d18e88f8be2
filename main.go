package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"breadwar/engine"
	"breadwar/experiments"
	"breadwar/game"
	"breadwar/meta"
	"breadwar/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	experiment := flag.String("experiment", "", "run an experiment instead of one game: depth, nodes or throughput")
	out := flag.String("out", "experiments", "directory experiment results are written under")
	games := flag.Int("games", experiments.NumGames, "games per matchup")
	depth := flag.Int("depth", 0, "search depth of both sides, overrides the config")
	nodes := flag.Int("nodes", 0, "node budget of both sides, overrides the config")
	turns := flag.Int("turns", 0, "max turns of a game, overrides the config")
	flag.Parse()

	config := meta.Defaults()
	if *configPath != "" {
		var err error
		config, err = meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *depth > 0 {
		config.Black.Depth, config.White.Depth = *depth, *depth
	}
	if *nodes > 0 {
		config.Black.Nodes, config.White.Nodes = *nodes, *nodes
	}
	if *turns > 0 {
		config.MaxTurns = *turns
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings := experiments.Settings{Root: *out, NumGames: *games, MaxTurns: config.MaxTurns}
	switch *experiment {
	case "":
		runGame(ctx, config)
	case "depth":
		if _, err := experiments.RunDepthExperiment(ctx, settings); err != nil {
			log.Fatal().Err(err).Msg("depth experiment failed")
		}
	case "nodes":
		if _, err := experiments.RunNodeBudgetExperiment(ctx, settings); err != nil {
			log.Fatal().Err(err).Msg("node budget experiment failed")
		}
	case "throughput":
		if _, err := experiments.RunThroughputExperiment(ctx, settings, experiments.ThroughputConfigs); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
}

func runGame(ctx context.Context, config meta.Config) {
	e := engine.LocalEngine(game.NewStandardRules(),
		newSearcher(game.Black, config.Black),
		newSearcher(game.White, config.White),
		engine.WithMaxTurns(config.MaxTurns))

	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	log.Info().Msgf("winner: %v after %d moves in %v", winner, gameMetric.TotalMoves, gameMetric.Duration)
	log.Info().Msgf("final board:\n%v", e.Board)
}

func newSearcher(owner game.Owner, config meta.SearchConfig) *searcher.AlphaBeta {
	return searcher.NewAlphaBeta(owner,
		searcher.WithDepth(config.Depth),
		searcher.WithNodes(config.Nodes),
		searcher.WithDisturb(config.Disturb),
		searcher.WithSeed(config.Seed),
		searcher.WithMetrics())
}
