package engine

import (
	"context"
	"strings"
	"time"

	"breadwar/experiments/metrics"
	"breadwar/game"
	"breadwar/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultPollInterval = time.Millisecond

type LocalOption func(e *Local)

func WithMaxTurns(turns int) LocalOption {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithPollInterval(interval time.Duration) LocalOption {
	return func(e *Local) {
		if interval > 0 {
			e.poll = interval
		}
	}
}

// Local plays a whole game between two in-process players on one board.
type Local struct {
	Board    *Board
	players  [2]Player
	maxTurns int
	poll     time.Duration
}

// LocalEngine seats black and white on a new board of rules.
func LocalEngine(rules *game.Rules, black, white Player, options ...LocalOption) *Local {
	if black.Owner() != game.Black || white.Owner() != game.White {
		panic("players are not seated on their own side")
	}

	e := &Local{
		Board:    NewBoard(rules),
		players:  [2]Player{black, white},
		maxTurns: MaxTurns,
		poll:     DefaultPollInterval,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until a result is reached or the turn limit is hit.
// The winner is None for a draw or an unfinished game.
func (e *Local) Run(ctx context.Context) (game.Owner, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Turn().String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%v is starting", e.Board.Turn())

	result := game.CheckTermination(e.Board)
	turn := 1
	for ; result == game.NotYet && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return game.None, gameMetric, moveMetrics, errors.Wrapf(err, "turn %d", turn)
		}
		player := e.players[e.Board.Turn()]

		actions, err := e.play(ctx, player)
		if err != nil {
			return game.None, gameMetric, moveMetrics, errors.Wrapf(err, "turn %d", turn)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player.Owner().String(),
			Action:       strings.Join(actions, "; "),
			SearchMetric: player.Metrics(),
		})

		if !e.Board.NewTurn() {
			log.Warn().Msgf("%v has no legal action and passes", player.Owner())
			e.Board.Pass()
		}
		result = game.CheckTermination(e.Board)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = result.Winner().String()

	if result == game.NotYet {
		log.Info().Msgf("stopped after %d turns without a result", e.maxTurns)
	} else {
		log.Info().Msgf("game over after %d turns: %v", len(moveMetrics), result)
	}
	return result.Winner(), gameMetric, moveMetrics, nil
}

// play runs one think of player and applies its atomic actions to the board.
func (e *Local) play(ctx context.Context, player Player) ([]string, error) {
	if err := player.Think(ctx, e.Board); err != nil {
		return nil, err
	}

	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()
	for player.State() == searcher.Thinking {
		select {
		case <-ctx.Done():
			player.Initialize()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var applied []string
	for {
		action := player.NextAction()
		if action.Type == game.ActionComplete {
			return applied, nil
		}
		if err := e.Board.Apply(action); err != nil {
			player.Initialize()
			return applied, err
		}
		applied = append(applied, action.String())
		log.Debug().Msgf("%v plays %v", player.Owner(), action)
	}
}
