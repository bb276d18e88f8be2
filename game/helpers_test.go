package game

import (
	"golang.org/x/exp/rand"
)

func emptyBoard(turn Owner) *GameDescriptor {
	return NewEmptyDescriptor(NewStandardRules(), turn)
}

func place(d *GameDescriptor, r, c int, t UnitType, owner Owner) {
	d.Put(Position{r, c}, UnitInfo{Type: t, Owner: owner})
}

// randomState plays up to plies random turns from the opening position, stopping
// early at a decided game or a side without legal actions.
func randomState(rng *rand.Rand, plies int) *GameDescriptor {
	d := StartingDescriptor(NewStandardRules())
	for i := 0; i < plies; i++ {
		if CheckTermination(d) != NotYet {
			break
		}
		actions := d.QueryAllActions()
		if len(actions) == 0 {
			break
		}
		d.DoAction(actions[rng.Intn(len(actions))])
	}
	return d
}

// randomStates samples reachable states of varying game length.
func randomStates(seed uint64, n int) []*GameDescriptor {
	rng := rand.New(rand.NewSource(seed))
	states := make([]*GameDescriptor, 0, n)
	for i := 0; i < n; i++ {
		states = append(states, randomState(rng, rng.Intn(40)))
	}
	return states
}

// queryAllActionsByClone enumerates composite actions on copies of d instead of
// mutating it. It is the reference the in-place enumeration is checked against.
func queryAllActionsByClone(d *GameDescriptor) []*Action {
	var actions []*Action

	pre := append(d.QueryBuyActions(), NewBuyAction(Void, NoBuy))
	for _, before := range pre {
		stage1 := d.Clone()
		if before.Type != Void {
			before.Do(stage1)
		}
		for _, move := range stage1.QueryMoveActions() {
			stage2 := stage1.Clone()
			move.Do(stage2)
			if before.Type == Void {
				for _, after := range stage2.QueryBuyActions() {
					actions = append(actions, NewMoveAndBuy(
						NewMoveAction(move.Src, move.Tar), NewBuyAction(after.Type, AfterMove)))
				}
				actions = append(actions, NewMove(move.Src, move.Tar))
			} else {
				actions = append(actions, NewMoveAndBuy(
					NewMoveAction(move.Src, move.Tar), NewBuyAction(before.Type, BeforeMove)))
			}
		}
	}
	return actions
}

func keyCounts(actions []*Action) map[ActionKey]int {
	counts := make(map[ActionKey]int)
	for _, a := range actions {
		counts[a.Key()]++
	}
	return counts
}
