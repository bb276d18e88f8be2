package game

// NewStandardRules returns the standard 7x5 layout: one base per side in the middle
// of its back row, eleven resource cells, and a Scout and a Pioneer per side.
func NewStandardRules() *Rules {
	r := &Rules{
		Bases: [2]Position{{0, Cols / 2}, {Rows - 1, Cols / 2}},
		BreadCells: []Position{
			{0, 0}, {0, 4}, {2, 1}, {2, 3},
			{3, 0}, {3, 2}, {3, 4},
			{6, 0}, {6, 4}, {4, 1}, {4, 3},
		},
		InitialUnits: []UnitInfo{
			{Pos: Position{0, 1}, Type: Pioneer, Owner: Black},
			{Pos: Position{0, 3}, Type: Scout, Owner: Black},
			{Pos: Position{6, 1}, Type: Scout, Owner: White},
			{Pos: Position{6, 3}, Type: Pioneer, Owner: White},
		},
		UnitCap: 5,
	}
	r.Costs[Boss] = 2
	r.Costs[Bomb] = 1
	r.Costs[Pioneer] = 1
	r.Costs[Scout] = 1
	return r
}
