package searcher

import (
	"context"
	"math"
	"testing"

	"breadwar/experiments/metrics"
	"breadwar/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func place(d *game.GameDescriptor, r, c int, t game.UnitType, owner game.Owner) {
	d.Put(game.Position{R: r, C: c}, game.UnitInfo{Type: t, Owner: owner})
}

func randomStates(seed uint64, n int) []*game.GameDescriptor {
	rng := rand.New(rand.NewSource(seed))
	states := make([]*game.GameDescriptor, 0, n)
	for i := 0; i < n; i++ {
		d := game.StartingDescriptor(game.NewStandardRules())
		plies := rng.Intn(30)
		for p := 0; p < plies && game.CheckTermination(d) == game.NotYet; p++ {
			actions := d.QueryAllActions()
			if len(actions) == 0 {
				break
			}
			d.DoAction(actions[rng.Intn(len(actions))])
		}
		states = append(states, d)
	}
	return states
}

func newTestSearch(ctx context.Context, d *game.GameDescriptor, depth, budget, disturb int, evaluate game.EvaluationFn) *search {
	return &search{
		ctx:      ctx,
		d:        d,
		maxDepth: depth,
		budget:   budget,
		disturb:  disturb,
		evaluate: evaluate,
		rng:      rand.New(rand.NewSource(1)),
		metrics:  metrics.NewDummyCollector(),
	}
}

// exactValues scores every root action of d with a full search to depth.
func exactValues(d *game.GameDescriptor, depth int) map[game.ActionKey]float64 {
	values := map[game.ActionKey]float64{}
	for _, a := range d.QueryAllActions() {
		s := newTestSearch(context.Background(), d, depth, math.MaxInt, 0, game.Evaluate)
		d.DoAction(a)
		values[a.Key()] = -s.alphaBeta(depth-1, -game.Infinite, game.Infinite)
		d.UndoAction(a)
	}
	return values
}

func keys(actions []*game.Action) []game.ActionKey {
	list := make([]game.ActionKey, 0, len(actions))
	for _, a := range actions {
		list = append(list, a.Key())
	}
	return list
}

// nearWin has a black scout one step from the empty white base.
func nearWin() *game.GameDescriptor {
	d := game.NewEmptyDescriptor(game.NewStandardRules(), game.Black)
	place(d, 5, 2, game.Scout, game.Black)
	place(d, 3, 0, game.Scout, game.White)
	return d
}

// stuck leaves black with a cornered scout and nothing to buy.
func stuck() *game.GameDescriptor {
	d := game.NewEmptyDescriptor(game.NewStandardRules(), game.Black)
	place(d, 0, 0, game.Scout, game.Black)
	place(d, 0, 1, game.Pioneer, game.White)
	place(d, 1, 0, game.Pioneer, game.White)
	return d
}

func TestSearchDepthZero(t *testing.T) {
	ab := NewAlphaBeta(game.Black, WithSeed(1))

	t.Run("open positions evaluate directly", func(t *testing.T) {
		for i, d := range randomStates(3, 20) {
			if game.CheckTermination(d) != game.NotYet {
				continue
			}
			want := game.Evaluate(d)

			best, value := ab.Search(d, 0)

			require.Nil(t, best, "state %d should not recurse", i)
			require.Equal(t, want, value, "state %d:\n%v", i, d)
		}
	})

	t.Run("decided positions score the result", func(t *testing.T) {
		d := nearWin()
		d.Move(game.Position{R: 5, C: 2}, game.Position{R: 6, C: 2})
		d.NewTurn()

		_, value := ab.Search(d, 0)

		require.Equal(t, -game.MaxValue, value, "white to move has lost")
	})
}

func TestSearchBounds(t *testing.T) {
	ab := NewAlphaBeta(game.Black, WithNodes(2_000), WithSeed(5))

	for i, d := range randomStates(5, 15) {
		before := d.Clone()

		_, value := ab.Search(d, 2)

		require.GreaterOrEqual(t, value, -game.Infinite, "state %d", i)
		require.LessOrEqual(t, value, game.Infinite, "state %d", i)
		require.True(t, before.Compare(d), "search must restore state %d", i)
	}
}

func TestSearchFindsWin(t *testing.T) {
	for _, depth := range []int{1, 3} {
		ab := NewAlphaBeta(game.Black, WithSeed(7))
		d := nearWin()

		best, value := ab.Search(d, depth)

		require.NotNil(t, best)
		require.Equal(t, game.Position{R: 6, C: 2}, best.Move.Tar, "depth %d should take the base", depth)
		require.Equal(t, game.MaxValue-1, value, "depth %d should see a win one ply away", depth)
	}
}

func TestSearchOpening(t *testing.T) {
	ab := NewAlphaBeta(game.Black, WithDepth(3), WithNodes(10_000), WithSeed(11))
	d := game.StartingDescriptor(game.NewStandardRules())
	before := d.Clone()
	legal := map[game.ActionKey]bool{}
	for _, a := range d.QueryAllActions() {
		legal[a.Key()] = true
	}

	best, value := ab.Search(d, 3)

	require.NotNil(t, best)
	require.True(t, legal[best.Key()], "%v is not a legal opening action", best)
	require.Equal(t, game.Black, d.OwnerAt(best.Move.Src))
	require.Less(t, value, game.MaxValue-10, "no forced result within three plies")
	require.Greater(t, value, -game.MaxValue+10, "no forced result within three plies")
	require.True(t, before.Compare(d))

	replayed := d.Clone()
	for _, a := range best.Unpack() {
		a.Do(replayed)
	}
	applied := d.Clone()
	best.Do(applied)

	require.True(t, applied.Compare(replayed), "replayed:\n%v\napplied:\n%v", replayed, applied)
}

func TestSearchCancelled(t *testing.T) {
	for i, d := range randomStates(13, 12) {
		if game.CheckTermination(d) != game.NotYet || len(d.QueryAllActions()) == 0 {
			continue
		}
		exact := exactValues(d, 2)

		for _, stop := range []int{1, 3, 7, 13, 21, 34, 55, 89} {
			ctx, cancel := context.WithCancel(context.Background())
			calls := 0
			evaluate := func(d *game.GameDescriptor) float64 {
				calls++
				if calls == stop {
					cancel()
				}
				return game.Evaluate(d)
			}
			before := d.Clone()
			s := newTestSearch(ctx, d, 2, math.MaxInt, 0, evaluate)

			value := s.run()
			best := s.choice()
			cancel()

			require.True(t, before.Compare(d), "state %d cancelled at leaf %d", i, stop)
			require.NotNil(t, best, "state %d cancelled at leaf %d", i, stop)
			if s.best == nil {
				require.Equal(t, s.root[0], best, "nothing finished, the first root action stands in")
				continue
			}
			require.InDelta(t, exact[best.Key()], value, 1e-9,
				"state %d cancelled at leaf %d reports %v for %v", i, stop, value, best)
			require.GreaterOrEqual(t, exact[best.Key()], exact[s.root[0].Key()],
				"state %d cancelled at leaf %d chose %v over the finished %v", i, stop, best, s.root[0])
		}
	}
}

func TestSearchBudgetKeepsRootActions(t *testing.T) {
	for i, d := range randomStates(17, 10) {
		if game.CheckTermination(d) != game.NotYet {
			continue
		}
		legal := keys(d.QueryAllActions())

		for _, budget := range []int{1, 50, math.MaxInt} {
			s := newTestSearch(context.Background(), d, 3, budget, DefaultDisturb, game.Evaluate)

			s.run()

			require.ElementsMatch(t, legal, keys(s.root), "state %d budget %d", i, budget)
			if best := s.choice(); best != nil {
				require.Contains(t, legal, best.Key(), "state %d budget %d", i, budget)
			}
		}
	}
}

func TestSearchNodeBudget(t *testing.T) {
	think := func(nodes int) *AlphaBeta {
		ab := NewAlphaBeta(game.Black, WithDepth(5), WithNodes(nodes), WithSeed(8))
		require.NoError(t, ab.Think(context.Background(), liveView{game.StartingDescriptor(game.NewStandardRules())}))
		waitComplete(t, ab)
		require.NotEmpty(t, drain(ab))
		return ab
	}

	bounded := think(200)
	full := think(math.MaxInt)

	require.GreaterOrEqual(t, bounded.Nodes(), 200)
	require.LessOrEqual(t, bounded.Nodes(), 400, "the budget is soft but stops most of the work")
	require.Greater(t, full.Nodes(), 2*bounded.Nodes())
	require.Less(t, bounded.Value(), game.Infinite)
	require.Greater(t, bounded.Value(), -game.Infinite)
}

func TestSearchWithoutActions(t *testing.T) {
	ab := NewAlphaBeta(game.Black, WithSeed(1))

	best, value := ab.Search(stuck(), 2)

	require.Nil(t, best)
	require.Equal(t, -game.Infinite, value)
}

func TestSearchSeeded(t *testing.T) {
	d := game.StartingDescriptor(game.NewStandardRules())

	best1, value1 := NewAlphaBeta(game.Black, WithSeed(42)).Search(d, 2)
	best2, value2 := NewAlphaBeta(game.Black, WithSeed(42)).Search(d, 2)

	require.Equal(t, best1.Key(), best2.Key())
	require.Equal(t, value1, value2)
}

func TestShuffle(t *testing.T) {
	newSearch := func(disturb int) *search {
		return &search{disturb: disturb, rng: rand.New(rand.NewSource(1))}
	}
	actions := func(n int) []*game.Action {
		var list []*game.Action
		for i := 0; i < n; i++ {
			list = append(list, game.NewMove(game.Position{R: i, C: 0}, game.Position{R: i, C: 1}))
		}
		return list
	}

	t.Run("empty lists are left alone", func(t *testing.T) {
		require.NotPanics(t, func() { newSearch(DefaultDisturb).shuffle(nil) })
	})

	t.Run("no swaps keep the order", func(t *testing.T) {
		list := actions(5)
		want := append([]*game.Action{}, list...)

		newSearch(0).shuffle(list)

		require.Equal(t, want, list)
	})

	t.Run("swaps permute the list", func(t *testing.T) {
		list := actions(7)
		want := append([]*game.Action{}, list...)

		newSearch(DefaultDisturb).shuffle(list)

		require.ElementsMatch(t, want, list)
	})
}
