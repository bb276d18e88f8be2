package game

// QueryBuyActions lists one purchase per soldier rank the side to move can buy
// right now, lowest rank first.
func (d *GameDescriptor) QueryBuyActions() []*BuyAction {
	var actions []*BuyAction
	for _, t := range Soldiers {
		if d.CanBuy(t, d.turn) {
			actions = append(actions, NewBuyAction(t, NoBuy))
		}
	}
	return actions
}

// QueryMoveActions lists every accepted single-step move of the side to move,
// scanning the board row by row.
func (d *GameDescriptor) QueryMoveActions() []*MoveAction {
	var actions []*MoveAction
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if d.units[r][c].Owner != d.turn {
				continue
			}
			src := Position{r, c}
			for _, offset := range MoveOffsets {
				tar := src.Add(offset)
				if tar.Valid() && d.CanMove(src, tar) {
					actions = append(actions, NewMoveAction(src, tar))
				}
			}
		}
	}
	return actions
}

// QueryAllActions lists every composite action of the side to move: each legal
// move, optionally preceded by a purchase, or followed by one when nothing was
// bought before it. Purchases and moves are applied and undone on d itself, so
// the call needs exclusive access to d even though d is unchanged on return.
func (d *GameDescriptor) QueryAllActions() []*Action {
	var actions []*Action

	pre := append(d.QueryBuyActions(), NewBuyAction(Void, NoBuy))
	for _, before := range pre {
		if before.Type != Void {
			before.Do(d)
		}
		for _, move := range d.QueryMoveActions() {
			move.Do(d)
			if before.Type == Void {
				for _, after := range d.QueryBuyActions() {
					actions = append(actions, NewMoveAndBuy(
						NewMoveAction(move.Src, move.Tar), NewBuyAction(after.Type, AfterMove)))
				}
				actions = append(actions, NewMove(move.Src, move.Tar))
			} else {
				actions = append(actions, NewMoveAndBuy(
					NewMoveAction(move.Src, move.Tar), NewBuyAction(before.Type, BeforeMove)))
			}
			move.Undo(d)
		}
		if before.Type != Void {
			before.Undo(d)
		}
	}
	return actions
}
