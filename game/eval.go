package game

import "golang.org/x/exp/slices"

const (
	MaxValue = 1_000_000.0  // Score of a decided game
	Infinite = MaxValue * 2 // Bound no score can reach
)

// Weights of the evaluation terms
const (
	PositionFactor = 5
	MaterialFactor = 20
	DangerFactor   = 10
	SpecialFactor  = 20
)

// positionValue rewards Black for advancing towards White's base. White reads it
// mirrored.
var positionValue = [Rows][Cols]float64{
	{1, 1, 1, 1, 1},
	{2, 2, 2, 2, 2},
	{3, 3, 3, 3, 3},
	{4, 4, 5, 4, 4},
	{5, 6, 7, 6, 5},
	{6, 7, 8, 7, 6},
	{7, 8, 10, 8, 7},
}

// UnitValue is the material worth of each counted type.
var UnitValue = [NumCounted]float64{
	Bread:   1.5,
	Scout:   1,
	Pioneer: 1.5,
	Boss:    5,
	Bomb:    1.3,
}

// EvaluationFn scores a descriptor from the viewpoint of the side to move.
type EvaluationFn func(d *GameDescriptor) float64

// Evaluate scores d for the side to move.
func Evaluate(d *GameDescriptor) float64 {
	return EvaluateFor(d, d.Turn())
}

// EvaluateFor scores d for owner: a saturated value when the game is decided,
// otherwise the weighted sum of position, material, danger and special terms.
func EvaluateFor(d *GameDescriptor, owner Owner) float64 {
	if result := CheckTermination(d); result != NotYet {
		return EvaluateResult(result, owner)
	}
	return evalPosition(d, owner)*PositionFactor +
		evalMaterial(d, owner)*MaterialFactor +
		evalDanger(d, owner)*DangerFactor +
		evalSpecial(d, owner)*SpecialFactor
}

// EvaluateResult maps a decided game to ±MaxValue for owner, 0 for a draw.
func EvaluateResult(result Result, owner Owner) float64 {
	switch result.Winner() {
	case owner:
		return MaxValue
	case Opposite(owner):
		return -MaxValue
	default:
		return 0
	}
}

func evalPosition(d *GameDescriptor, owner Owner) float64 {
	value := 0.0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			info := d.UnitAt(Position{r, c})
			if info.Owner == None {
				continue
			}
			pos := info.Pos
			if info.Owner == White {
				pos = pos.Mirror()
			}
			if info.Owner == owner {
				value += positionValue[pos.R][pos.C]
			} else {
				value -= positionValue[pos.R][pos.C]
			}
		}
	}
	return value
}

// materialOf values the first two units of a type fully and the rest at half.
func materialOf(t UnitType, n int) float64 {
	if n <= 2 {
		return UnitValue[t] * float64(n)
	}
	return UnitValue[t]*float64(n-2)/2 + UnitValue[t]*2
}

func evalMaterial(d *GameDescriptor, owner Owner) float64 {
	value := 0.0
	for t := Bread; t < Void; t++ {
		value += materialOf(t, d.Count(t, owner))
		value -= materialOf(t, d.Count(t, Opposite(owner)))
	}
	return value
}

// evalDanger scores the conflicts owner's units could start next move. Of
// several even trades only one can be taken, so only the best one counts in
// owner's favour and the others count against.
func evalDanger(d *GameDescriptor, owner Owner) float64 {
	value := 0.0
	var ties []float64

	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			src := d.UnitAt(Position{r, c})
			if src.Owner != owner {
				continue
			}
			for _, offset := range MoveOffsets {
				pos := src.Pos.Add(offset)
				if !pos.Valid() {
					continue
				}
				tar := d.UnitAt(pos)
				if tar.Owner != Opposite(owner) {
					continue
				}
				bomb := src.Type == Bomb || tar.Type == Bomb
				switch {
				case src.Type > tar.Type:
					value += UnitValue[tar.Type]
					if bomb {
						value -= UnitValue[src.Type]
					}
				case src.Type < tar.Type:
					value -= UnitValue[src.Type]
					if bomb {
						value += UnitValue[src.Type]
					}
				default:
					ties = append(ties, UnitValue[src.Type])
				}
			}
		}
	}

	if len(ties) > 0 {
		slices.Sort(ties)
		for _, v := range ties[:len(ties)-1] {
			value -= v
		}
		value += ties[len(ties)-1]
	}
	return value
}

func evalSpecial(d *GameDescriptor, owner Owner) float64 {
	opponent := Opposite(owner)
	rest := d.RestResource()
	value := 0.0

	if d.Count(Boss, opponent) > 0 && d.Count(Bomb, owner) > 0 {
		value++
	}
	if d.Count(Boss, owner) > 0 && d.Count(Bomb, opponent) > 0 {
		value--
	}

	if rest > 0 {
		if d.Count(Scout, owner) == 0 {
			if d.Count(Bread, owner) == 0 {
				value -= 4
			}
			if rest >= 5 {
				value -= 3
			}
		}
		if d.Count(Scout, owner) >= 2 && rest > 5 {
			value += 7
		}
		if d.Count(Scout, opponent) >= 2 && rest > 5 {
			value -= 7
		}
		if d.Count(Scout, opponent) == 0 {
			if d.Count(Bread, opponent) == 0 {
				value += 4
			}
			if rest >= 5 {
				value += 3
			}
		}
	} else {
		value -= float64(d.Count(Scout, owner)) * 0.5
		value += float64(d.Count(Scout, opponent)) * 0.5
	}
	return value
}
