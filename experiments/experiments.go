package experiments

import (
	"context"

	"breadwar/engine"
	"breadwar/experiments/metrics"
	"breadwar/game"
	"breadwar/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const NumGames = 10 // Per match up

// Settings are shared by every game of an experiment.
type Settings struct {
	Root     string // Directory the experiment results are written under
	NumGames int
	MaxTurns int
	Rules    *game.Rules
}

func (s Settings) withDefaults() Settings {
	if s.Root == "" {
		s.Root = "experiments"
	}
	if s.NumGames <= 0 {
		s.NumGames = NumGames
	}
	if s.MaxTurns <= 0 {
		s.MaxTurns = engine.MaxTurns
	}
	if s.Rules == nil {
		s.Rules = game.NewStandardRules()
	}
	return s
}

// RunDepthExperiment pairs a depth 3 baseline against deeper and shallower
// searchers with the default node budget.
func RunDepthExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 3, Nodes: searcher.DefaultNodes, Disturb: searcher.DefaultDisturb}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 1, Nodes: baseline.Nodes, Disturb: baseline.Disturb},
		{ID: 2, Depth: 2, Nodes: baseline.Nodes, Disturb: baseline.Disturb},
		{ID: 3, Depth: 4, Nodes: baseline.Nodes, Disturb: baseline.Disturb},
		{ID: 4, Depth: 5, Nodes: baseline.Nodes, Disturb: baseline.Disturb},
	}

	// Each matchup pairs the baseline agent against a depth agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "depth", settings, append(depthConfigs, baseline), matchUps)
}

// RunNodeBudgetExperiment pairs a full budget baseline against searchers that
// hit the soft node budget early.
func RunNodeBudgetExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: searcher.DefaultDepth, Nodes: searcher.DefaultNodes, Disturb: searcher.DefaultDisturb}
	budgetConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: baseline.Depth, Nodes: 1_000, Disturb: baseline.Disturb},
		{ID: 2, Depth: baseline.Depth, Nodes: 10_000, Disturb: baseline.Disturb},
		{ID: 3, Depth: baseline.Depth, Nodes: 100_000, Disturb: baseline.Disturb},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "node_budget", settings, append(budgetConfigs, baseline), matchUps)
}

// runExperiment plays every matchup and stores configs and records as CSV. It
// returns the directory the results were written to.
func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	settings = settings.withDefaults()

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < settings.NumGames; i++ {
			// Alternate sides so neither agent always moves first
			black, white := config1, config2
			if i%2 == 1 {
				black, white = config2, config1
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, settings, black, white)
			if err != nil {
				return "", errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     black.ID,
				Agent2:     white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(settings.Root, name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return "", errors.Wrap(err, "failed to store agent configs")
	}
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return "", errors.Wrap(err, "failed to store game records")
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", errors.Wrap(err, "failed to store move records")
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game between two agents and returns the winner
func runGame(ctx context.Context, settings Settings, black, white metrics.AgentConfig) (game.Owner, metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.LocalEngine(settings.Rules,
		createSearcher(game.Black, black),
		createSearcher(game.White, white),
		engine.WithMaxTurns(settings.MaxTurns))
	return e.Run(ctx)
}

func createSearcher(owner game.Owner, config metrics.AgentConfig) *searcher.AlphaBeta {
	options := []searcher.Option{}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	options = append(options, searcher.WithDisturb(config.Disturb))
	if config.Nodes > 0 {
		options = append(options, searcher.WithNodes(config.Nodes))
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewAlphaBeta(owner, options...)
}
