package entity

import (
	"gridsnake/game/types"
)

// noSegment marks an absent link
const noSegment = -1

// segment is one occupied cell, linked toward the head (prev) and toward the tail (next)
type segment struct {
	pos  types.Position
	prev int
	next int
}

// Body is the snake: an arena of linked segments plus a mirrored occupied set.
// Segments are addressed by stable arena index; freed slots are reused.
type Body struct {
	segments []segment
	free     []int

	head    int
	tail    int
	heading types.Heading

	// occupied mirrors the linked list, position to arena index
	occupied map[types.Position]int
}

// NewBody creates a single-segment body at start moving in heading
func NewBody(start types.Position, heading types.Heading) *Body {
	b := &Body{
		segments: make([]segment, 0, 16),
		heading:  heading,
		occupied: make(map[types.Position]int, 16),
	}
	id := b.alloc(start)
	b.head = id
	b.tail = id
	b.occupied[start] = id
	return b
}

// NewBodyFromPositions builds a body from cells ordered head to tail.
// Cells must be distinct and orthogonally adjacent; ok is false otherwise.
func NewBodyFromPositions(cells []types.Position, heading types.Heading) (*Body, bool) {
	if len(cells) == 0 {
		return nil, false
	}

	b := NewBody(cells[0], heading)
	for i := 1; i < len(cells); i++ {
		if _, adjacent := types.HeadingBetween(cells[i-1], cells[i]); !adjacent || b.Contains(cells[i]) {
			return nil, false
		}
		b.appendTail(cells[i])
	}
	return b, true
}

func (b *Body) alloc(pos types.Position) int {
	seg := segment{pos: pos, prev: noSegment, next: noSegment}
	if n := len(b.free); n > 0 {
		id := b.free[n-1]
		b.free = b.free[:n-1]
		b.segments[id] = seg
		return id
	}
	b.segments = append(b.segments, seg)
	return len(b.segments) - 1
}

func (b *Body) release(id int) {
	b.segments[id] = segment{prev: noSegment, next: noSegment}
	b.free = append(b.free, id)
}

// Heading returns the current direction of travel
func (b *Body) Heading() types.Heading {
	return b.heading
}

// SetHeading changes direction unless h reverses the current heading.
// Returns false when the change is rejected.
func (b *Body) SetHeading(h types.Heading) bool {
	if h == b.heading.Opposite() {
		return false
	}
	b.heading = h
	return true
}

// Head returns the head cell
func (b *Body) Head() types.Position {
	return b.segments[b.head].pos
}

// Tail returns the tail cell
func (b *Body) Tail() types.Position {
	return b.segments[b.tail].pos
}

// PeekNextHead returns where the head would move on the next advance
func (b *Body) PeekNextHead() types.Position {
	return b.Head().Offset(b.heading)
}

// Contains reports whether pos is occupied by the body
func (b *Body) Contains(pos types.Position) bool {
	_, ok := b.occupied[pos]
	return ok
}

// Len returns the number of segments
func (b *Body) Len() int {
	return len(b.occupied)
}

// Advance slides the body one cell along its heading, keeping its length.
// The tail is vacated before the new head is linked, so moving into the
// cell the tail leaves is consistent.
func (b *Body) Advance() {
	next := b.PeekNextHead()

	if b.head == b.tail {
		seg := &b.segments[b.head]
		delete(b.occupied, seg.pos)
		seg.pos = next
		b.occupied[next] = b.head
		return
	}

	old := b.tail
	b.tail = b.segments[old].prev
	b.segments[b.tail].next = noSegment
	delete(b.occupied, b.segments[old].pos)
	b.release(old)

	id := b.alloc(next)
	b.segments[id].next = b.head
	b.segments[b.head].prev = id
	b.head = id
	b.occupied[next] = id
}

// tailHeading is the local direction of travel at the tail end,
// pointing from the tail's predecessor to the tail
func (b *Body) tailHeading() types.Heading {
	tail := b.segments[b.tail]
	h, ok := types.HeadingBetween(b.segments[tail.prev].pos, tail.pos)
	if !ok {
		panic("entity: body segments are not adjacent")
	}
	return h
}

// growthCandidates lists tail extension directions in trial order
func (b *Body) growthCandidates() []types.Heading {
	if b.head == b.tail {
		return []types.Heading{b.heading.Opposite()}
	}
	th := b.tailHeading()
	orth := th.Orthogonals()
	return []types.Heading{th, orth[0], orth[1]}
}

// GrowTail extends the body by one segment behind the tail.
// Candidates are tried straight first, then the two orthogonals; the first
// cell that is on the grid, not part of the body and not rejected by
// occupiedElsewhere wins. occupiedElsewhere may be nil.
// Returns false and leaves the body unchanged when no candidate qualifies.
func (b *Body) GrowTail(grid types.Grid, occupiedElsewhere func(types.Position) bool) bool {
	tail := b.Tail()
	for _, h := range b.growthCandidates() {
		pos := tail.Offset(h)
		if !grid.IsValid(pos) || b.Contains(pos) {
			continue
		}
		if occupiedElsewhere != nil && occupiedElsewhere(pos) {
			continue
		}
		b.appendTail(pos)
		return true
	}
	return false
}

func (b *Body) appendTail(pos types.Position) {
	id := b.alloc(pos)
	b.segments[id].prev = b.tail
	b.segments[b.tail].next = id
	b.tail = id
	b.occupied[pos] = id
}

// Walk calls fn for each cell from head to tail until fn returns false
func (b *Body) Walk(fn func(types.Position) bool) {
	for id := b.head; id != noSegment; id = b.segments[id].next {
		if !fn(b.segments[id].pos) {
			return
		}
	}
}

// WalkReverse calls fn for each cell from tail to head until fn returns false
func (b *Body) WalkReverse(fn func(types.Position) bool) {
	for id := b.tail; id != noSegment; id = b.segments[id].prev {
		if !fn(b.segments[id].pos) {
			return
		}
	}
}

// Positions returns a copy of the body cells ordered head to tail
func (b *Body) Positions() []types.Position {
	out := make([]types.Position, 0, b.Len())
	b.Walk(func(p types.Position) bool {
		out = append(out, p)
		return true
	})
	return out
}
