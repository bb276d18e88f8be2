package game

// Rules bundles the fixed configuration of a game: where the bases and resources
// are, how the sides start, and what soldiers cost. It is read-only once built
// and shared by every descriptor and board of a game.
type Rules struct {
	Bases        [2]Position // Indexed by Owner
	BreadCells   []Position
	InitialUnits []UnitInfo
	Costs        [NumCounted]int // Purchase cost per soldier rank
	UnitCap      int             // Max live soldiers per owner for a purchase to be allowed
}

// Base returns the base cell of owner.
func (r *Rules) Base(owner Owner) Position {
	return r.Bases[owner]
}

// Cost returns the Bread price of a soldier rank.
func (r *Rules) Cost(t UnitType) int {
	return r.Costs[t]
}

// Conflict is the outcome of moving a unit onto an occupied cell.
type Conflict int

const (
	ConflictNothing Conflict = iota // Free move, nothing is disturbed
	SrcWins                         // Target removed, source moves in
	DesWins                         // Move rejected
	EatsBread                       // Scout collects the resource
	MutualDestroy                   // Both units removed
)

func (c Conflict) String() string {
	switch c {
	case ConflictNothing:
		return "nothing"
	case SrcWins:
		return "src_wins"
	case DesWins:
		return "des_wins"
	case EatsBread:
		return "eats_bread"
	case MutualDestroy:
		return "mutual_destroy"
	default:
		return "unknown"
	}
}

// ResolveConflict decides what happens when a unit of type src moves onto a cell
// showing type des.
func ResolveConflict(src, des UnitType) Conflict {
	if !IsSoldier(src) || des == Void {
		return ConflictNothing
	}
	if des == Bread {
		if src == Scout {
			return EatsBread
		}
		return ConflictNothing
	}
	if src == Bomb || des == Bomb {
		return MutualDestroy
	}
	if src >= des {
		return SrcWins
	}
	return DesWins
}

// Result is the game outcome reported by CheckTermination.
type Result int

const (
	NotYet Result = iota
	BlackWins
	WhiteWins
	Draw
)

func (r Result) String() string {
	switch r {
	case BlackWins:
		return "black_wins"
	case WhiteWins:
		return "white_wins"
	case Draw:
		return "draw"
	default:
		return "not_yet"
	}
}

// Winner returns the winning side, or None for a draw or an open game.
func (r Result) Winner() Owner {
	switch r {
	case BlackWins:
		return Black
	case WhiteWins:
		return White
	default:
		return None
	}
}

// View is the read-only surface the rules need from a board. Both the simulator
// and the live board implement it.
type View interface {
	Rules() *Rules
	UnitAt(pos Position) UnitInfo
	Count(t UnitType, owner Owner) int
	TotalCount(owner Owner) int
}

// CheckTermination reports whether the game on v is decided. Total counts include
// collected Bread, which can still be turned into soldiers. A lone Bomb cannot take
// a base, so sides left with only Bombs have no useful units.
func CheckTermination(v View) Result {
	rules := v.Rules()
	blackTotal := v.TotalCount(Black)
	whiteTotal := v.TotalCount(White)

	if blackTotal == 0 && whiteTotal == 0 {
		return Draw
	}
	if occupiesBase(v.UnitAt(rules.Base(Black)), White) || blackTotal == 0 {
		return WhiteWins
	}
	if occupiesBase(v.UnitAt(rules.Base(White)), Black) || whiteTotal == 0 {
		return BlackWins
	}

	blackUseful := blackTotal - v.Count(Bomb, Black)
	whiteUseful := whiteTotal - v.Count(Bomb, White)
	switch {
	case blackUseful == 0 && whiteUseful == 0:
		return Draw
	case whiteUseful == 0:
		return BlackWins
	case blackUseful == 0:
		return WhiteWins
	}
	return NotYet
}

func occupiesBase(info UnitInfo, intruder Owner) bool {
	return info.Owner == intruder && info.Type != Bomb
}
