package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryActions(t *testing.T) {
	t.Run("opening moves of black", func(t *testing.T) {
		d := StartingDescriptor(NewStandardRules())

		moves := d.QueryMoveActions()

		// Pioneer (0,1): down, left onto bread, right onto the base. Scout (0,3): down,
		// right onto bread, left onto the base.
		require.Len(t, moves, 6)
		require.Empty(t, d.QueryBuyActions(), "no bread collected yet")
		// Only collecting the bread at (0,4) pays for a post-move scout, pioneer or bomb.
		require.Len(t, d.QueryAllActions(), 6+3)
	})

	t.Run("buy options are offered before and after the move", func(t *testing.T) {
		d := emptyBoard(Black)
		place(d, 3, 2, Scout, Black)
		place(d, 5, 0, Scout, White)
		d.SetCount(Bread, Black, 1)

		actions := d.QueryAllActions()

		// 4 moves for the scout; a pre-move buy of scout, pioneer or bomb adds a unit
		// on the base with 3 moves of its own (up is off the board).
		counts := map[ActionType]int{}
		for _, a := range actions {
			counts[a.Type]++
		}
		require.Equal(t, 4, counts[ActionMove])
		// pre-move: 3 ranks x (4 + 3 moves); post-move: 4 moves x 3 ranks
		require.Equal(t, 3*7+4*3, counts[ActionMoveAndBuy])
	})

	t.Run("queries leave the descriptor unchanged", func(t *testing.T) {
		for i, d := range randomStates(11, 30) {
			before := d.Clone()

			d.QueryAllActions()

			require.True(t, before.Compare(d), "state %d:\n%v", i, d)
		}
	})

	t.Run("in-place enumeration matches the copying reference", func(t *testing.T) {
		for i, d := range randomStates(13, 40) {
			want := keyCounts(queryAllActionsByClone(d))
			got := keyCounts(d.QueryAllActions())

			require.Equal(t, want, got, "state %d:\n%v", i, d)
		}
	})
}

func TestActionRoundTrip(t *testing.T) {
	states := randomStates(17, 40)

	t.Run("composite actions", func(t *testing.T) {
		for i, d := range states {
			for _, a := range d.QueryAllActions() {
				before := d.Clone()

				d.DoAction(a)
				require.NotEqual(t, before.Turn(), d.Turn(), "state %d %v should end the turn", i, a)
				d.UndoAction(a)

				require.True(t, before.Compare(d), "state %d action %v:\n%v", i, a, d)
			}
		}
	})

	t.Run("atomic moves", func(t *testing.T) {
		for i, d := range states {
			for _, m := range d.QueryMoveActions() {
				before := d.Clone()

				m.Do(d)
				m.Undo(d)

				require.True(t, before.Compare(d), "state %d %v:\n%v", i, m, d)
			}
		}
	})

	t.Run("atomic buys", func(t *testing.T) {
		for i, d := range states {
			buys := append(d.QueryBuyActions(), NewBuyAction(Void, NoBuy))
			for _, b := range buys {
				before := d.Clone()

				b.Do(d)
				b.Undo(d)

				require.True(t, before.Compare(d), "state %d %v:\n%v", i, b, d)
			}
		}
	})

	t.Run("actions can be replayed after an undo", func(t *testing.T) {
		d := StartingDescriptor(NewStandardRules())
		a := d.QueryAllActions()[0]

		d.DoAction(a)
		after := d.Clone()
		d.UndoAction(a)
		d.DoAction(a)

		require.True(t, after.Compare(d))
	})
}

func TestActionMisuse(t *testing.T) {
	d := StartingDescriptor(NewStandardRules())

	t.Run("undo without do panics", func(t *testing.T) {
		require.Panics(t, func() { NewMoveAction(Position{0, 3}, Position{1, 3}).Undo(d) })
		require.Panics(t, func() { NewBuyAction(Scout, NoBuy).Undo(d) })
		require.Panics(t, func() { NewMove(Position{0, 3}, Position{1, 3}).Undo(d) })
	})

	t.Run("do twice panics", func(t *testing.T) {
		m := NewMoveAction(Position{0, 3}, Position{1, 3})
		m.Do(d)
		require.Panics(t, func() { m.Do(d) })
		m.Undo(d)
	})

	t.Run("an unordered purchase cannot join a move", func(t *testing.T) {
		require.Panics(t, func() {
			NewMoveAndBuy(NewMoveAction(Position{0, 3}, Position{1, 3}), NewBuyAction(Scout, NoBuy))
		})
	})
}

func TestUnpack(t *testing.T) {
	move := NewMoveAction(Position{1, 2}, Position{2, 2})

	t.Run("pre-move buy comes first", func(t *testing.T) {
		a := NewMoveAndBuy(move, NewBuyAction(Bomb, BeforeMove))

		parts := a.Unpack()

		require.Len(t, parts, 2)
		require.Equal(t, ActionBuy, parts[0].Type)
		require.Equal(t, Bomb, parts[0].Buy.Type)
		require.Equal(t, ActionMove, parts[1].Type)
		require.Equal(t, move.Src, parts[1].Move.Src)
	})

	t.Run("post-move buy comes last", func(t *testing.T) {
		a := NewMoveAndBuy(move, NewBuyAction(Scout, AfterMove))

		parts := a.Unpack()

		require.Len(t, parts, 2)
		require.Equal(t, ActionMove, parts[0].Type)
		require.Equal(t, ActionBuy, parts[1].Type)
	})

	t.Run("plain move", func(t *testing.T) {
		parts := NewMove(move.Src, move.Tar).Unpack()

		require.Len(t, parts, 1)
		require.Equal(t, NewMove(move.Src, move.Tar).Key(), parts[0].Key())
	})

	t.Run("parts replay the composite", func(t *testing.T) {
		d := emptyBoard(Black)
		place(d, 1, 2, Scout, Black)
		place(d, 5, 0, Scout, White)
		d.SetCount(Bread, Black, 1)
		a := NewMoveAndBuy(NewMoveAction(Position{1, 2}, Position{2, 2}), NewBuyAction(Pioneer, AfterMove))

		composite := d.Clone()
		a.Do(composite)
		for _, part := range a.Unpack() {
			part.Do(d)
		}

		require.True(t, composite.Compare(d))
		require.Equal(t, Pioneer, d.TypeAt(Position{0, 2}))
	})
}
