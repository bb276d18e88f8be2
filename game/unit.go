package game

// UnitType ranks the pieces of the game. Soldier ranks compare by value: a higher
// rank beats a lower one in a conflict.
type UnitType int

const (
	Bread UnitType = iota
	Scout
	Pioneer
	Boss
	Bomb
	Void // Empty cell
	Tile // Presentation-only marker, never stored in the simulator
)

// NumCounted is the number of unit types with a per-owner count (Bread..Bomb).
const NumCounted = int(Void)

// Soldiers lists the ranks that can be owned, bought and fight, lowest first.
var Soldiers = [4]UnitType{Scout, Pioneer, Boss, Bomb}

// IsSoldier reports whether t is an ownable fighting rank.
func IsSoldier(t UnitType) bool {
	return t > Bread && t < Void
}

func (t UnitType) String() string {
	switch t {
	case Bread:
		return "bread"
	case Scout:
		return "scout"
	case Pioneer:
		return "pioneer"
	case Boss:
		return "boss"
	case Bomb:
		return "bomb"
	case Void:
		return "void"
	case Tile:
		return "tile"
	default:
		return "unknown"
	}
}

// Owner is a side of the game. None marks empty cells and neutral resources.
type Owner int

const (
	Black Owner = iota
	White
	None
)

// Owners lists the two playing sides.
var Owners = [2]Owner{Black, White}

// Opposite returns the other side, or None for None.
func Opposite(o Owner) Owner {
	switch o {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

func (o Owner) String() string {
	switch o {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// GridState is the board-level annotation of a cell, independent of any soldier
// standing on it.
type GridState int

const (
	Base0 GridState = iota
	Base1
	GridVoid
	GridBread
)

// UnitInfo describes what occupies a cell.
type UnitInfo struct {
	Pos   Position
	Type  UnitType
	Owner Owner
}

// Empty returns the info of an unoccupied cell at pos.
func Empty(pos Position) UnitInfo {
	return UnitInfo{Pos: pos, Type: Void, Owner: None}
}
