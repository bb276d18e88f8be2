package experiments

import (
	"context"
	"time"

	"breadwar/experiments/metrics"
	"breadwar/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ThroughputConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 2, Nodes: searcher.DefaultNodes, Disturb: searcher.DefaultDisturb},
	{ID: 2, Depth: 3, Nodes: searcher.DefaultNodes, Disturb: searcher.DefaultDisturb},
	{ID: 3, Depth: 4, Nodes: searcher.DefaultNodes, Disturb: searcher.DefaultDisturb},
}

// Throughput summarizes how fast one agent config searched over its games.
type Throughput struct {
	Config      metrics.AgentConfig
	Thinks      int
	Nodes       int
	Duration    time.Duration
	NodesPerSec float64
}

// RunThroughputExperiment plays each config against itself, for the same
// playing strength on both sides, and measures evaluated nodes per second.
func RunThroughputExperiment(ctx context.Context, settings Settings, configs []metrics.AgentConfig) ([]Throughput, error) {
	settings = settings.withDefaults()
	results := make([]Throughput, 0, len(configs))

	log.Info().Msg("starting throughput experiment...")

	for _, config := range configs {
		log.Info().Msgf("starting self-play of agent=%+v...", config)

		result := Throughput{Config: config}
		for i := 0; i < settings.NumGames; i++ {
			_, _, moveMetrics, err := runGame(ctx, settings, config, config)
			if err != nil {
				return nil, errors.Wrapf(err, "agent %d game %d", config.ID, i+1)
			}
			for _, mm := range moveMetrics {
				result.Thinks++
				result.Nodes += mm.Nodes
				result.Duration += mm.Duration
			}
		}
		if result.Duration > 0 {
			result.NodesPerSec = float64(result.Nodes) / result.Duration.Seconds()
		}
		results = append(results, result)

		log.Info().Msgf("agent %d evaluated %d nodes in %d thinks at %.0f nodes/s", config.ID, result.Nodes, result.Thinks, result.NodesPerSec)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}
