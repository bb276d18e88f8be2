package engine

import (
	"fmt"

	"breadwar/game"

	"github.com/pkg/errors"
)

var ErrIllegalAction = errors.New("illegal action")

// Board is the authoritative board of a running game. Soldiers and resources
// live in separate layers; a soldier may stand on a resource it cannot collect.
type Board struct {
	rules      *game.Rules
	units      [game.Rows][game.Cols]game.UnitInfo
	bread      [game.Rows][game.Cols]bool
	counts     [2][game.NumCounted]int
	bossBought [2]bool
	restBread  int
	turn       game.Owner
	hasMove    bool
	hasBuy     bool
}

// NewBoard sets up a new game of rules with Black to move.
func NewBoard(rules *game.Rules) *Board {
	b := &Board{rules: rules, turn: game.Black}
	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			b.units[r][c] = game.Empty(game.Position{R: r, C: c})
		}
	}
	for _, pos := range rules.BreadCells {
		b.bread[pos.R][pos.C] = true
		b.restBread++
	}
	for _, info := range rules.InitialUnits {
		b.place(info)
	}
	return b
}

func (b *Board) Rules() *game.Rules { return b.rules }

func (b *Board) Turn() game.Owner { return b.turn }

func (b *Board) RestBread() int { return b.restBread }

func (b *Board) BossBought(owner game.Owner) bool { return b.bossBought[owner] }

func (b *Board) Count(t game.UnitType, owner game.Owner) int { return b.counts[owner][t] }

func (b *Board) TotalCount(owner game.Owner) int {
	sum := 0
	for _, n := range b.counts[owner] {
		sum += n
	}
	return sum
}

// UnitAt returns the soldier at pos, else the resource lying there, else an
// empty cell.
func (b *Board) UnitAt(pos game.Position) game.UnitInfo {
	if info := b.units[pos.R][pos.C]; info.Type != game.Void {
		return info
	}
	if b.bread[pos.R][pos.C] {
		return game.UnitInfo{Pos: pos, Type: game.Bread, Owner: game.None}
	}
	return game.Empty(pos)
}

func (b *Board) GridAt(pos game.Position) game.GridState {
	switch {
	case pos == b.rules.Base(game.Black):
		return game.Base0
	case pos == b.rules.Base(game.White):
		return game.Base1
	case b.bread[pos.R][pos.C]:
		return game.GridBread
	default:
		return game.GridVoid
	}
}

func (b *Board) place(info game.UnitInfo) {
	b.units[info.Pos.R][info.Pos.C] = info
	b.counts[info.Owner][info.Type]++
}

func (b *Board) remove(pos game.Position) game.UnitInfo {
	info := b.units[pos.R][pos.C]
	if info.Owner != game.None {
		b.counts[info.Owner][info.Type]--
	}
	b.units[pos.R][pos.C] = game.Empty(pos)
	return info
}

// Move moves the soldier of the side to move from src to the neighbouring tar.
func (b *Board) Move(src, tar game.Position) error {
	if !src.Valid() || !tar.Valid() || !src.IsNeighbor(tar) {
		return errors.Wrapf(ErrIllegalAction, "move %v->%v is not a single step", src, tar)
	}
	if b.hasMove {
		return errors.Wrapf(ErrIllegalAction, "%v already moved this turn", b.turn)
	}
	mover := b.units[src.R][src.C]
	if mover.Owner != b.turn {
		return errors.Wrapf(ErrIllegalAction, "no %v soldier at %v", b.turn, src)
	}
	des := b.UnitAt(tar)
	if des.Owner == mover.Owner {
		return errors.Wrapf(ErrIllegalAction, "%v is occupied by own %v", tar, des.Type)
	}

	switch game.ResolveConflict(mover.Type, des.Type) {
	case game.MutualDestroy:
		b.remove(src)
		b.remove(tar)
	case game.SrcWins:
		b.remove(tar)
		b.relocate(src, tar)
	case game.DesWins:
		return errors.Wrapf(ErrIllegalAction, "%v cannot attack %v", mover.Type, des.Type)
	case game.EatsBread:
		b.bread[tar.R][tar.C] = false
		b.restBread--
		b.counts[mover.Owner][game.Bread]++
		b.relocate(src, tar)
	case game.ConflictNothing:
		b.relocate(src, tar)
	}
	b.hasMove = true
	return nil
}

func (b *Board) relocate(src, tar game.Position) {
	info := b.remove(src)
	info.Pos = tar
	b.place(info)
}

// Buy places a new soldier of type t on the base of the side to move.
func (b *Board) Buy(t game.UnitType) error {
	// A fresh snapshot has no per-turn flags, so hasBuy is checked here.
	d := game.NewGameDescriptor(b, b.turn)
	if b.hasBuy || !d.CanBuy(t, b.turn) {
		return errors.Wrapf(ErrIllegalAction, "%v cannot buy %v", b.turn, t)
	}
	base := b.rules.Base(b.turn)
	b.place(game.UnitInfo{Pos: base, Type: t, Owner: b.turn})
	b.counts[b.turn][game.Bread] -= b.rules.Cost(t)
	if t == game.Boss {
		b.bossBought[b.turn] = true
	}
	b.hasBuy = true
	return nil
}

// Apply plays one atomic action pulled from a player.
func (b *Board) Apply(a *game.Action) error {
	switch a.Type {
	case game.ActionMove:
		return b.Move(a.Move.Src, a.Move.Tar)
	case game.ActionBuy:
		return b.Buy(a.Buy.Type)
	default:
		return errors.Wrapf(ErrIllegalAction, "%v is not an atomic action", a)
	}
}

// NewTurn hands the turn over once the side to move has moved.
func (b *Board) NewTurn() bool {
	if !b.hasMove {
		return false
	}
	b.Pass()
	return true
}

// Pass hands the turn over without a move, for a side left with none.
func (b *Board) Pass() {
	b.hasMove = false
	b.hasBuy = false
	b.turn = game.Opposite(b.turn)
}

func (b *Board) String() string {
	return fmt.Sprint(game.NewGameDescriptor(b, b.turn))
}
