package engine

import (
	"context"
	"testing"

	"breadwar/game"
	"breadwar/searcher"

	"github.com/stretchr/testify/require"
)

func shallowPlayers() (*searcher.AlphaBeta, *searcher.AlphaBeta) {
	black := searcher.NewAlphaBeta(game.Black, searcher.WithDepth(1), searcher.WithSeed(1))
	white := searcher.NewAlphaBeta(game.White, searcher.WithDepth(2), searcher.WithNodes(2_000), searcher.WithSeed(2))
	return black, white
}

func TestLocalEngineSeats(t *testing.T) {
	black, white := shallowPlayers()

	require.Panics(t, func() { LocalEngine(game.NewStandardRules(), white, black) })
	require.NotPanics(t, func() { LocalEngine(game.NewStandardRules(), black, white) })
}

func TestLocalEngineRun(t *testing.T) {
	black, white := shallowPlayers()
	e := LocalEngine(game.NewStandardRules(), black, white, WithMaxTurns(40))

	winner, gameMetric, moveMetrics, err := e.Run(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, moveMetrics)
	require.LessOrEqual(t, len(moveMetrics), 40)
	require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	require.Equal(t, game.Black.String(), gameMetric.StartingPlayer)
	require.Equal(t, winner.String(), gameMetric.Winner)
	require.Equal(t, game.CheckTermination(e.Board).Winner(), winner)

	for i, m := range moveMetrics {
		require.Equal(t, i+1, m.Step)
	}
	require.Equal(t, game.Black.String(), moveMetrics[0].Player)
	if len(moveMetrics) > 1 {
		require.Equal(t, game.White.String(), moveMetrics[1].Player)
	}
	require.Equal(t, searcher.Idle, black.State(), "every result is pulled")
	require.Equal(t, searcher.Idle, white.State(), "every result is pulled")
}

func TestLocalEngineCancelled(t *testing.T) {
	black, white := shallowPlayers()
	e := LocalEngine(game.NewStandardRules(), black, white)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, moveMetrics, err := e.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, moveMetrics)
	require.True(t, game.StartingDescriptor(e.Board.Rules()).Compare(game.NewGameDescriptor(e.Board, e.Board.Turn())))
}
