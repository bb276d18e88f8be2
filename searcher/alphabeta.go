package searcher

import (
	"context"
	"time"

	"breadwar/experiments/metrics"
	"breadwar/game"
	"breadwar/meta"

	"golang.org/x/exp/rand"
)

const (
	DefaultDepth   = meta.DEPTH
	DefaultNodes   = meta.NODES
	DefaultDisturb = meta.DISTURB // Random pairwise swaps of each action list
)

type Option func(ab *AlphaBeta)

func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depth = depth
		}
	}
}

func WithNodes(nodes int) Option {
	return func(ab *AlphaBeta) {
		if nodes > 0 {
			ab.nodes = nodes
		}
	}
}

func WithDisturb(swaps int) Option {
	return func(ab *AlphaBeta) {
		if swaps >= 0 {
			ab.disturb = swaps
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(ab *AlphaBeta) {
		ab.seed = seed
	}
}

func WithEvaluationFn(evaluate game.EvaluationFn) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.newCollector = metrics.NewCollector
	}
}

// search is the state of one alpha-beta run. It owns its descriptor for the
// whole run and is only touched by the goroutine executing it.
type search struct {
	ctx      context.Context
	d        *game.GameDescriptor
	maxDepth int
	budget   int
	disturb  int
	evaluate game.EvaluationFn
	rng      *rand.Rand
	metrics  metrics.Collector

	nodes int
	best  *game.Action
	root  []*game.Action // Root actions in search order
}

// run searches from the descriptor's side to move and returns the root value.
func (s *search) run() float64 {
	return s.alphaBeta(s.maxDepth, -game.Infinite, game.Infinite)
}

// alphaBeta is a negamax search. Values are from the viewpoint of the side to
// move at the node; decided games score closer to zero the deeper they occur so
// that quick wins and slow losses are preferred.
func (s *search) alphaBeta(depth int, alpha, beta float64) float64 {
	ply := float64(s.maxDepth - depth)

	if result := game.CheckTermination(s.d); result != game.NotYet {
		s.metrics.AddTerminal()
		value := game.EvaluateResult(result, s.d.Turn())
		switch {
		case value > 0:
			return value - ply
		case value < 0:
			return value + ply
		}
		return 0
	}
	if depth == 0 || s.nodes >= s.budget {
		s.nodes++
		s.metrics.AddNode()
		return s.evaluate(s.d) - float64(depth)
	}

	actions := s.d.QueryAllActions()
	s.shuffle(actions)
	if depth == s.maxDepth {
		s.root = actions
	}

	for _, action := range actions {
		if s.ctx.Err() != nil {
			break
		}
		s.d.DoAction(action)
		value := -s.alphaBeta(depth-1, -beta, -alpha)
		s.d.UndoAction(action)
		// A child cut short by cancellation reports a bound, not its value.
		if s.ctx.Err() != nil {
			break
		}

		if value >= beta {
			s.metrics.AddCutoff()
			return beta
		}
		if value > alpha {
			alpha = value
			if depth == s.maxDepth {
				s.best = action
			}
		}
	}
	return alpha
}

// shuffle swaps a fixed number of random pairs, varying the move order between
// runs without a full permutation.
func (s *search) shuffle(actions []*game.Action) {
	if len(actions) == 0 {
		return
	}
	for i := 0; i < s.disturb; i++ {
		a, b := s.rng.Intn(len(actions)), s.rng.Intn(len(actions))
		actions[a], actions[b] = actions[b], actions[a]
	}
}

// choice returns the chosen root action. An interrupted run that never finished
// a root branch falls back to the first action it would have tried.
func (s *search) choice() *game.Action {
	if s.best != nil {
		return s.best
	}
	if s.ctx.Err() != nil && len(s.root) > 0 {
		return s.root[0]
	}
	return nil
}

// Search runs a synchronous search of d to the given depth using the searcher's
// budget and evaluation. d is restored before returning. It returns nil when the
// side to move has no legal action.
func (ab *AlphaBeta) Search(d *game.GameDescriptor, depth int) (*game.Action, float64) {
	ab.mu.Lock()
	s := ab.newSearch(context.Background(), d, depth, ab.newCollector())
	ab.mu.Unlock()

	value := s.run()
	return s.choice(), value
}

// newSearch must be called with ab.mu held.
func (ab *AlphaBeta) newSearch(ctx context.Context, d *game.GameDescriptor, depth int, collector metrics.Collector) *search {
	ab.thinks++
	seed := ab.seed + ab.thinks
	if ab.seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &search{
		ctx:      ctx,
		d:        d,
		maxDepth: depth,
		budget:   ab.nodes,
		disturb:  ab.disturb,
		evaluate: ab.evaluate,
		rng:      rand.New(rand.NewSource(seed)),
		metrics:  collector,
	}
}
