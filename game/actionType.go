package game

import "fmt"

// ActionType represents the shape of an action a side can play in a turn.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionBuy
	ActionMoveAndBuy
	ActionComplete // Sentinel returned once a turn's actions are drained
)

func (t ActionType) String() string {
	switch t {
	case ActionMove:
		return "move"
	case ActionBuy:
		return "buy"
	case ActionMoveAndBuy:
		return "move_and_buy"
	case ActionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Action is one turn of play: a move, optionally paired with a purchase made
// before or after it. Unpacked actions hold a single part.
type Action struct {
	Type ActionType
	Move *MoveAction
	Buy  *BuyAction

	done    bool
	turn    Owner
	hasMove bool
	hasBuy  bool
}

// NewMove returns a move-only action.
func NewMove(src, tar Position) *Action {
	return &Action{Type: ActionMove, Move: NewMoveAction(src, tar)}
}

// NewBuy returns a buy-only action.
func NewBuy(t UnitType, status BuyStatus) *Action {
	return &Action{Type: ActionBuy, Buy: NewBuyAction(t, status)}
}

// NewMoveAndBuy pairs a move with a purchase. The purchase must be ordered.
func NewMoveAndBuy(move *MoveAction, buy *BuyAction) *Action {
	if buy.Status != BeforeMove && buy.Status != AfterMove {
		panic(fmt.Sprintf("buy %v has no order relative to the move", buy.Type))
	}
	return &Action{Type: ActionMoveAndBuy, Move: move, Buy: buy}
}

// CompleteAction is the sentinel handed out when no action is pending.
func CompleteAction() *Action {
	return &Action{Type: ActionComplete}
}

// Do applies the parts in order. The turn and per-turn flags are recorded so
// that Undo also reverts a following NewTurn.
func (a *Action) Do(d *GameDescriptor) {
	if a.done {
		panic(fmt.Sprintf("action %v applied twice", a))
	}
	a.turn = d.turn
	a.hasMove = d.hasMove
	a.hasBuy = d.hasBuy
	a.done = true

	if a.buyFirst() {
		a.Buy.Do(d)
	}
	if a.Move != nil {
		a.Move.Do(d)
	}
	if a.buyLast() {
		a.Buy.Do(d)
	}
}

// Undo reverts the parts in reverse order and restores the recorded turn.
func (a *Action) Undo(d *GameDescriptor) {
	if !a.done {
		panic(fmt.Sprintf("action %v undone without being applied", a))
	}
	if a.buyLast() {
		a.Buy.Undo(d)
	}
	if a.Move != nil {
		a.Move.Undo(d)
	}
	if a.buyFirst() {
		a.Buy.Undo(d)
	}
	d.turn = a.turn
	d.hasMove = a.hasMove
	d.hasBuy = a.hasBuy
	a.done = false
}

func (a *Action) buyFirst() bool {
	return a.Buy != nil && (a.Move == nil || a.Buy.Status != AfterMove)
}

func (a *Action) buyLast() bool {
	return a.Buy != nil && a.Move != nil && a.Buy.Status == AfterMove
}

// Unpack splits the action into atomic actions in execution order. The returned
// actions are fresh and share no undo state with a.
func (a *Action) Unpack() []*Action {
	var parts []*Action
	if a.buyFirst() {
		parts = append(parts, NewBuy(a.Buy.Type, a.Buy.Status))
	}
	if a.Move != nil {
		parts = append(parts, NewMove(a.Move.Src, a.Move.Tar))
	}
	if a.buyLast() {
		parts = append(parts, NewBuy(a.Buy.Type, a.Buy.Status))
	}
	return parts
}

// ActionKey identifies an action by value, ignoring its undo state.
type ActionKey struct {
	Type   ActionType
	Src    Position
	Tar    Position
	Buy    UnitType
	Status BuyStatus
}

func (a *Action) Key() ActionKey {
	k := ActionKey{Type: a.Type, Buy: Void}
	if a.Move != nil {
		k.Src, k.Tar = a.Move.Src, a.Move.Tar
	}
	if a.Buy != nil {
		k.Buy, k.Status = a.Buy.Type, a.Buy.Status
	}
	return k
}

func (a *Action) String() string {
	switch a.Type {
	case ActionMove:
		return a.Move.String()
	case ActionBuy:
		return a.Buy.String()
	case ActionMoveAndBuy:
		if a.Buy.Status == BeforeMove {
			return a.Buy.String() + ", " + a.Move.String()
		}
		return a.Move.String() + ", " + a.Buy.String()
	default:
		return a.Type.String()
	}
}
