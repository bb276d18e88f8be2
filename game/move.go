package game

import "fmt"

// MoveAction moves the soldier at Src onto Tar. Do records everything Undo
// needs, so one MoveAction must not be done twice without an Undo in between.
type MoveAction struct {
	Src Position
	Tar Position

	done     bool
	mover    Owner
	src      UnitInfo
	tar      UnitInfo
	rest     int
	bread    int
	hasMoved bool
}

func NewMoveAction(src, tar Position) *MoveAction {
	return &MoveAction{Src: src, Tar: tar}
}

func (m *MoveAction) Do(d *GameDescriptor) {
	if m.done {
		panic(fmt.Sprintf("move %v->%v applied twice", m.Src, m.Tar))
	}
	m.mover = d.Turn()
	m.src = d.UnitAt(m.Src)
	m.tar = d.UnitAt(m.Tar)
	m.rest = d.restResource
	m.bread = d.counts[m.mover][Bread]
	m.hasMoved = d.hasMove
	m.done = true

	d.Move(m.Src, m.Tar)
}

// Undo clears both cells and puts the recorded units back. A cell still showing
// a resource was not touched by the move and is left alone.
func (m *MoveAction) Undo(d *GameDescriptor) {
	if !m.done {
		panic(fmt.Sprintf("move %v->%v undone without being applied", m.Src, m.Tar))
	}
	if d.TypeAt(m.Src) != Bread {
		d.Pick(m.Src)
	}
	if d.TypeAt(m.Tar) != Bread {
		d.Pick(m.Tar)
	}
	d.Put(m.Src, m.src)
	d.Put(m.Tar, m.tar)
	d.hasMove = m.hasMoved
	d.counts[m.mover][Bread] = m.bread
	d.restResource = m.rest
	m.done = false
}

func (m *MoveAction) String() string {
	return fmt.Sprintf("move %v->%v", m.Src, m.Tar)
}

// BuyStatus orders a purchase relative to the move of the same turn.
type BuyStatus int

const (
	NoBuy BuyStatus = iota
	BeforeMove
	AfterMove
)

func (s BuyStatus) String() string {
	switch s {
	case BeforeMove:
		return "before_move"
	case AfterMove:
		return "after_move"
	default:
		return "none"
	}
}

// BuyAction buys a soldier of Type for the side to move. A Void type is a
// placeholder that buys nothing.
type BuyAction struct {
	Type   UnitType
	Status BuyStatus

	done       bool
	buyer      Owner
	bought     bool
	bread      int
	hasBought  bool
	bossBought bool
}

func NewBuyAction(t UnitType, status BuyStatus) *BuyAction {
	return &BuyAction{Type: t, Status: status}
}

func (b *BuyAction) Do(d *GameDescriptor) {
	if b.done {
		panic(fmt.Sprintf("buy %v applied twice", b.Type))
	}
	b.buyer = d.Turn()
	b.bread = d.counts[b.buyer][Bread]
	b.hasBought = d.hasBuy
	b.bossBought = d.bossBought[b.buyer]
	b.done = true

	b.bought = d.Buy(b.Type, b.buyer)
}

func (b *BuyAction) Undo(d *GameDescriptor) {
	if !b.done {
		panic(fmt.Sprintf("buy %v undone without being applied", b.Type))
	}
	if b.bought {
		d.Pick(d.rules.Base(b.buyer))
	}
	d.counts[b.buyer][Bread] = b.bread
	d.hasBuy = b.hasBought
	d.bossBought[b.buyer] = b.bossBought
	b.done = false
}

func (b *BuyAction) String() string {
	return fmt.Sprintf("buy %v %v", b.Type, b.Status)
}
