package searcher

import (
	"context"
	"sync"
	"time"

	"breadwar/experiments/metrics"
	"breadwar/game"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrBusy = errors.New("think already in progress")

// ThinkState is the life cycle of a think: Idle -> Thinking -> Complete -> Idle.
type ThinkState int

const (
	Idle ThinkState = iota
	Thinking
	Complete
)

func (s ThinkState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Thinking:
		return "thinking"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// AlphaBeta decides the turns of one side with a depth and node bounded
// negamax search. Each think runs on its own goroutine; the caller polls State
// and then pulls the chosen atomic actions with NextAction.
type AlphaBeta struct {
	owner        game.Owner
	depth        int
	nodes        int
	disturb      int
	seed         uint64
	evaluate     game.EvaluationFn
	newCollector func() metrics.Collector

	mu      sync.Mutex
	thinks  uint64
	state   ThinkState
	current  *think
	stopping chan struct{} // Done channel of a cancelled think still running
	queue    []*game.Action
	last     outcome
}

// think is one in-flight search. result is written by the worker before done
// is closed.
type think struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	result outcome
}

type outcome struct {
	thinkID string
	best    *game.Action
	value   float64
	nodes   int
	cost    time.Duration
	metric  metrics.SearchMetric
}

func NewAlphaBeta(owner game.Owner, options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		owner:        owner,
		depth:        DefaultDepth,
		nodes:        DefaultNodes,
		disturb:      DefaultDisturb,
		evaluate:     game.Evaluate,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

func (ab *AlphaBeta) Owner() game.Owner {
	return ab.owner
}

// Think snapshots board and starts searching a turn for the searcher's side.
// It fails with ErrBusy unless the searcher is Idle and no cancelled think is
// still unwinding. Cancelling ctx stops the search at the next node boundary
// and keeps the best action found so far.
func (ab *AlphaBeta) Think(ctx context.Context, board game.LiveBoard) error {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.state != Idle {
		return errors.Wrapf(ErrBusy, "searcher for %v is %v", ab.owner, ab.state)
	}
	if ab.stopping != nil {
		select {
		case <-ab.stopping:
			ab.stopping = nil
		default:
			return errors.Wrapf(ErrBusy, "searcher for %v is still stopping", ab.owner)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &think{
		id:     uuid.New().String(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d := game.NewGameDescriptor(board, ab.owner)
	collector := ab.newCollector()
	s := ab.newSearch(ctx, d, ab.depth, collector)

	ab.current = t
	ab.queue = nil
	ab.state = Thinking

	log.Debug().Str("think", t.id).Msgf("%v starts thinking with depth=%d nodes=%d", ab.owner, ab.depth, ab.nodes)

	go func() {
		defer close(t.done)
		defer cancel()

		start := time.Now()
		collector.Start(t.id, s.maxDepth, s.budget)
		value := s.run()
		cost := time.Since(start)
		metric := collector.Complete(value)
		if metric.ThinkID == "" { // Dummy collector
			metric = metrics.SearchMetric{
				ThinkID:  t.id,
				Depth:    s.maxDepth,
				Budget:   s.budget,
				Duration: cost,
				Nodes:    s.nodes,
				Value:    value,
			}
		}
		t.result = outcome{
			thinkID: t.id,
			best:    s.choice(),
			value:   value,
			nodes:   s.nodes,
			cost:    cost,
			metric:  metric,
		}
	}()
	return nil
}

// State reports the life cycle state without blocking. A finished search is
// picked up here and its chosen action queued as atomic actions.
func (ab *AlphaBeta) State() ThinkState {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.state == Thinking {
		select {
		case <-ab.current.done:
			ab.complete(ab.current.result)
		default:
		}
	}
	return ab.state
}

func (ab *AlphaBeta) complete(result outcome) {
	ab.last = result
	ab.current = nil
	ab.queue = nil
	if result.best != nil {
		ab.queue = result.best.Unpack()
	}
	ab.state = Complete

	log.Info().Str("think", result.thinkID).
		Msgf("%v chose [%v] value=%.2f nodes=%d in %v", ab.owner, result.best, result.value, result.nodes, result.cost)
}

// NextAction pulls the next atomic action of a completed think. Once the queue
// is drained it returns the ActionComplete sentinel and the searcher is Idle.
func (ab *AlphaBeta) NextAction() *game.Action {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.state != Complete {
		return game.CompleteAction()
	}
	if len(ab.queue) == 0 {
		ab.state = Idle
		return game.CompleteAction()
	}
	next := ab.queue[0]
	ab.queue = ab.queue[1:]
	if len(ab.queue) == 0 {
		ab.state = Idle
	}
	return next
}

// Initialize cancels any in-flight think and forces the searcher back to Idle.
// A cancelled worker finishes on its own descriptor and its result is dropped;
// Think reports ErrBusy until it has returned.
func (ab *AlphaBeta) Initialize() {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.current != nil {
		ab.current.cancel()
		ab.stopping = ab.current.done
		log.Debug().Str("think", ab.current.id).Msg("think cancelled")
	}
	ab.current = nil
	ab.queue = nil
	ab.state = Idle
}

// CostTime is the wall-clock duration of the last completed think.
func (ab *AlphaBeta) CostTime() time.Duration {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last.cost
}

// Nodes is the number of leaves evaluated by the last completed think.
func (ab *AlphaBeta) Nodes() int {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last.nodes
}

func (ab *AlphaBeta) ThinkID() string {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last.thinkID
}

func (ab *AlphaBeta) Value() float64 {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last.value
}

// Metrics returns the metrics of the last completed think. Cutoffs and
// terminals are only counted when the searcher was built WithMetrics.
func (ab *AlphaBeta) Metrics() metrics.SearchMetric {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last.metric
}
