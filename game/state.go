package game

import "fmt"

// LiveBoard is the read-only surface of a real game board that a descriptor can be
// snapshotted from. Resource cells without a soldier report a Bread unit.
type LiveBoard interface {
	View
	GridAt(pos Position) GridState
	RestBread() int
	BossBought(owner Owner) bool
}

// GameDescriptor is a mutable simulation of a game: the unit layer, the grid
// annotations, per-owner counts and the per-turn flags. All cell mutations go
// through Pick and Put so counting stays in one place.
//
// A descriptor is not safe for concurrent use. QueryAllActions mutates and
// restores it, so even queries require exclusive access.
type GameDescriptor struct {
	rules        *Rules
	units        [Rows][Cols]UnitInfo
	grids        [Rows][Cols]GridState
	counts       [2][NumCounted]int // Owner x Bread..Bomb
	bossBought   [2]bool
	restResource int
	turn         Owner
	hasMove      bool
	hasBuy       bool
}

func newDescriptor(rules *Rules, turn Owner) *GameDescriptor {
	d := &GameDescriptor{rules: rules, turn: turn}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pos := Position{r, c}
			d.units[r][c] = Empty(pos)
			d.grids[r][c] = GridVoid
		}
	}
	return d
}

// NewGameDescriptor snapshots a live board for turn to move. A resource reported
// in the unit layer is normalized to Void; it stays recoverable through the grid.
func NewGameDescriptor(board LiveBoard, turn Owner) *GameDescriptor {
	d := newDescriptor(board.Rules(), turn)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pos := Position{r, c}
			info := board.UnitAt(pos)
			if info.Type == Bread {
				info = Empty(pos)
			}
			info.Pos = pos
			d.units[r][c] = info
			d.grids[r][c] = board.GridAt(pos)
		}
	}
	for _, owner := range Owners {
		for t := Bread; t < Void; t++ {
			d.counts[owner][t] = board.Count(t, owner)
		}
		d.bossBought[owner] = board.BossBought(owner)
	}
	d.restResource = board.RestBread()
	return d
}

// StartingDescriptor returns the opening position of rules with Black to move.
func StartingDescriptor(rules *Rules) *GameDescriptor {
	d := NewEmptyDescriptor(rules, Black)
	for _, pos := range rules.BreadCells {
		d.Put(pos, UnitInfo{Pos: pos, Type: Bread, Owner: None})
	}
	for _, info := range rules.InitialUnits {
		d.Put(info.Pos, info)
	}
	return d
}

// NewEmptyDescriptor returns a board with only the bases marked and nothing on it.
func NewEmptyDescriptor(rules *Rules, turn Owner) *GameDescriptor {
	d := newDescriptor(rules, turn)
	d.grids[rules.Bases[Black].R][rules.Bases[Black].C] = Base0
	d.grids[rules.Bases[White].R][rules.Bases[White].C] = Base1
	return d
}

func (d *GameDescriptor) Rules() *Rules { return d.rules }

func (d *GameDescriptor) Turn() Owner { return d.turn }

func (d *GameDescriptor) SetTurn(turn Owner) { d.turn = turn }

func (d *GameDescriptor) HasMove() bool { return d.hasMove }

func (d *GameDescriptor) HasBuy() bool { return d.hasBuy }

// RestResource is the number of resources still lying on the board.
func (d *GameDescriptor) RestResource() int { return d.restResource }

func (d *GameDescriptor) GridAt(pos Position) GridState {
	mustValid(pos)
	return d.grids[pos.R][pos.C]
}

// NewTurn ends the current turn. It requires a move to have been made and
// reports whether the turn changed.
func (d *GameDescriptor) NewTurn() bool {
	if !d.hasMove {
		return false
	}
	d.hasMove = false
	d.hasBuy = false
	d.turn = Opposite(d.turn)
	return true
}

// DoAction plays a whole turn: the action followed by the turn change.
func (d *GameDescriptor) DoAction(a *Action) {
	a.Do(d)
	d.NewTurn()
}

// UndoAction reverts DoAction, restoring the turn and both per-turn flags.
func (d *GameDescriptor) UndoAction(a *Action) {
	a.Undo(d)
}

// CanMove reports whether the unit at src may move onto tar this turn.
func (d *GameDescriptor) CanMove(src, tar Position) bool {
	if d.hasMove || !IsSoldier(d.TypeAt(src)) {
		return false
	}
	if d.OwnerAt(src) == d.OwnerAt(tar) {
		return false
	}
	return ResolveConflict(d.TypeAt(src), d.TypeAt(tar)) != DesWins
}

// Move moves the unit at src onto tar, resolving any conflict. It returns false
// and leaves the board untouched when the move is rejected.
func (d *GameDescriptor) Move(src, tar Position) bool {
	if !IsSoldier(d.TypeAt(src)) || d.OwnerAt(src) == d.OwnerAt(tar) {
		return false
	}

	switch ResolveConflict(d.TypeAt(src), d.TypeAt(tar)) {
	case MutualDestroy:
		d.Pick(src)
		d.Pick(tar)
	case SrcWins:
		d.Pick(tar)
		d.Put(tar, d.Pick(src))
	case DesWins:
		return false
	case EatsBread:
		d.Pick(tar)
		info := d.Put(tar, d.Pick(src))
		d.counts[info.Owner][Bread]++
	case ConflictNothing:
		d.Put(tar, d.Pick(src))
	}
	d.hasMove = true
	return true
}

// CanBuy reports whether owner may buy a unit of type t right now.
func (d *GameDescriptor) CanBuy(t UnitType, owner Owner) bool {
	if d.hasBuy || !IsSoldier(t) {
		return false
	}
	if owner != Black && owner != White {
		return false
	}
	if d.counts[owner][Bread] < d.rules.Cost(t) {
		return false
	}
	if d.UnitAt(d.rules.Base(owner)).Owner != None {
		return false
	}
	if t == Boss && (d.bossBought[owner] || d.counts[owner][Boss] > 0) {
		return false
	}
	if d.SoldierCount(owner) >= d.rules.UnitCap {
		return false
	}
	return true
}

// Buy places a new unit of type t on owner's base and pays for it.
func (d *GameDescriptor) Buy(t UnitType, owner Owner) bool {
	if !d.CanBuy(t, owner) {
		return false
	}
	base := d.rules.Base(owner)
	d.Put(base, UnitInfo{Pos: base, Type: t, Owner: owner})
	d.counts[owner][Bread] -= d.rules.Cost(t)
	if t == Boss {
		d.bossBought[owner] = true
	}
	d.hasBuy = true
	return true
}

// TypeAt returns the type shown at pos; an empty resource cell shows Bread.
func (d *GameDescriptor) TypeAt(pos Position) UnitType {
	mustValid(pos)
	if d.units[pos.R][pos.C].Type == Void && d.grids[pos.R][pos.C] == GridBread {
		return Bread
	}
	return d.units[pos.R][pos.C].Type
}

// UnitAt returns a copy of what occupies pos.
func (d *GameDescriptor) UnitAt(pos Position) UnitInfo {
	mustValid(pos)
	if d.units[pos.R][pos.C].Type == Void && d.grids[pos.R][pos.C] == GridBread {
		return UnitInfo{Pos: pos, Type: Bread, Owner: None}
	}
	return d.units[pos.R][pos.C]
}

func (d *GameDescriptor) OwnerAt(pos Position) Owner {
	return d.UnitAt(pos).Owner
}

func (d *GameDescriptor) Count(t UnitType, owner Owner) int {
	return d.counts[owner][t]
}

func (d *GameDescriptor) SetCount(t UnitType, owner Owner, value int) {
	d.counts[owner][t] = value
}

// TotalCount sums every count of owner, collected Bread included.
func (d *GameDescriptor) TotalCount(owner Owner) int {
	sum := 0
	for _, n := range d.counts[owner] {
		sum += n
	}
	return sum
}

// SoldierCount is the number of owner's soldiers on the board.
func (d *GameDescriptor) SoldierCount(owner Owner) int {
	return d.TotalCount(owner) - d.counts[owner][Bread]
}

func (d *GameDescriptor) BossBought(owner Owner) bool {
	return d.bossBought[owner]
}

// Pick removes whatever occupies pos and returns it. Picking a resource clears
// the grid annotation; picking a soldier leaves the grid untouched.
func (d *GameDescriptor) Pick(pos Position) UnitInfo {
	info := d.UnitAt(pos)
	if info.Type == Bread {
		d.grids[pos.R][pos.C] = GridVoid
		d.restResource--
		return info
	}
	if info.Owner != None {
		d.counts[info.Owner][info.Type]--
	}
	d.units[pos.R][pos.C] = Empty(pos)
	return info
}

// Put places unit at pos and returns the resulting cell content. The cell's
// unit layer must be empty.
func (d *GameDescriptor) Put(pos Position, unit UnitInfo) UnitInfo {
	mustValid(pos)
	switch {
	case unit.Type == Bread:
		d.grids[pos.R][pos.C] = GridBread
		d.restResource++
	case unit.Type == Void:
		d.units[pos.R][pos.C] = Empty(pos)
	default:
		if unit.Owner != None {
			d.counts[unit.Owner][unit.Type]++
		}
		d.units[pos.R][pos.C] = UnitInfo{Pos: pos, Type: unit.Type, Owner: unit.Owner}
	}
	return d.UnitAt(pos)
}

// Clone returns a deep copy sharing only the read-only rules.
func (d *GameDescriptor) Clone() *GameDescriptor {
	clone := *d
	return &clone
}

// Compare reports whether both descriptors hold exactly the same state.
func (d *GameDescriptor) Compare(o *GameDescriptor) bool {
	return *d == *o
}

// String renders the board, black's base on top, for logs and test failures.
func (d *GameDescriptor) String() string {
	s := fmt.Sprintf("turn=%v move=%v buy=%v rest=%d bread=%d/%d\n",
		d.turn, d.hasMove, d.hasBuy, d.restResource, d.counts[Black][Bread], d.counts[White][Bread])
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			s += cellSymbol(d.UnitAt(Position{r, c}))
		}
		s += "\n"
	}
	return s
}

var cellSymbols = map[UnitType]string{Bread: "*", Scout: "s", Pioneer: "p", Boss: "k", Bomb: "b", Void: "."}

func cellSymbol(info UnitInfo) string {
	s := cellSymbols[info.Type]
	if info.Owner == White && s != "" {
		s = string(s[0] - 'a' + 'A')
	}
	return s
}
