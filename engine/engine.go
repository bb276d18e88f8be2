package engine

import (
	"context"

	"breadwar/experiments/metrics"
	"breadwar/game"
	"breadwar/meta"
	"breadwar/searcher"
)

const MaxTurns = meta.MAX_TURNS

type Engine interface {
	// Run plays a game till there's a result or MaxTurns turns are played
	Run(ctx context.Context) (winner game.Owner, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Player decides the turns of one side through the think life cycle.
type Player interface {
	Owner() game.Owner
	Think(ctx context.Context, board game.LiveBoard) error
	State() searcher.ThinkState
	NextAction() *game.Action
	Initialize()
	Metrics() metrics.SearchMetric
}

var _ Player = (*searcher.AlphaBeta)(nil)
