package metrics

import (
	"sync/atomic"
	"time"
)

type AgentConfig struct {
	ID      int
	Depth   int
	Nodes   int // Node budget per think
	Disturb int // Random swaps of the action list per node, 0 keeps the generated order
	Seed    uint64
}

type SearchMetric struct {
	ThinkID   string
	Depth     int
	Budget    int
	Duration  time.Duration
	Nodes     int // Leaves evaluated
	Cutoffs   int // Beta cutoffs
	Terminals int // Decided positions reached
	Value     float64
}

type MoveMetric struct {
	Step   int
	Player string
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(thinkID string, depth, budget int)
	AddNode()
	AddCutoff()
	AddTerminal()
	Complete(value float64) SearchMetric
}

type collector struct {
	thinkID   string
	depth     int
	budget    int
	startTime time.Time
	nodes     atomic.Int32
	cutoffs   atomic.Int32
	terminals atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(thinkID string, depth, budget int) {
	m.startTime = time.Now()
	m.thinkID = thinkID
	m.depth = depth
	m.budget = budget
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete(value float64) SearchMetric {
	return SearchMetric{
		ThinkID:   m.thinkID,
		Depth:     m.depth,
		Budget:    m.budget,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Terminals: int(m.terminals.Load()),
		Value:     value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(thinkID string, depth, budget int) {}
func (m *dummyCollector) AddNode()                                {}
func (m *dummyCollector) AddCutoff()                              {}
func (m *dummyCollector) AddTerminal()                            {}
func (m *dummyCollector) Complete(value float64) SearchMetric     { return SearchMetric{} }
