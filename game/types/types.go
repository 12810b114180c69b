package types

import "fmt"

// Board defaults
const (
	DefaultGridSize = 20
)

// Position is a board cell addressed by row and column
type Position struct {
	Row int
	Col int
}

// Offset returns the position one cell away in direction h
func (p Position) Offset(h Heading) Position {
	dr, dc := h.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) String() string {
	return fmt.Sprintf("[%d, %d]", p.Row, p.Col)
}

// Heading is one of the four cardinal directions
type Heading uint8

const (
	Up Heading = iota
	Down
	Left
	Right
)

// Headings lists all valid headings
var Headings = [...]Heading{Up, Down, Left, Right}

// Delta returns the row and column step for the heading
func (h Heading) Delta() (int, int) {
	switch h {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic(fmt.Sprintf("types: invalid heading %d", h))
}

// Opposite returns the reverse heading
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("types: invalid heading %d", h))
}

// Orthogonals returns the two perpendicular headings in growth trial order:
// vertical headings try Right then Left, horizontal ones Down then Up
func (h Heading) Orthogonals() [2]Heading {
	switch h {
	case Up, Down:
		return [2]Heading{Right, Left}
	case Left, Right:
		return [2]Heading{Down, Up}
	}
	panic(fmt.Sprintf("types: invalid heading %d", h))
}

// Valid reports whether h is one of the four defined headings
func (h Heading) Valid() bool {
	return h <= Right
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Heading(%d)", uint8(h))
}

// HeadingBetween returns the heading that leads from one cell to an adjacent one.
// ok is false when the cells are not orthogonal neighbours.
func HeadingBetween(from, to Position) (Heading, bool) {
	switch {
	case to.Row == from.Row-1 && to.Col == from.Col:
		return Up, true
	case to.Row == from.Row+1 && to.Col == from.Col:
		return Down, true
	case to.Col == from.Col-1 && to.Row == from.Row:
		return Left, true
	case to.Col == from.Col+1 && to.Row == from.Row:
		return Right, true
	}
	return 0, false
}

// Rand is the random source used for position sampling.
// Satisfied by *golang.org/x/exp/rand.Rand and *math/rand.Rand.
type Rand interface {
	Intn(n int) int
}

// Grid is the square game board, Size rows by Size columns
type Grid struct {
	Size int
}

// NewGrid creates a grid with size rows and columns
func NewGrid(size int) Grid {
	return Grid{Size: size}
}

// IsValid reports whether pos lies on the board
func (g Grid) IsValid(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Size && pos.Col >= 0 && pos.Col < g.Size
}

// RandomPosition samples a cell uniformly over the whole board
func (g Grid) RandomPosition(rng Rand) Position {
	return Position{
		Row: rng.Intn(g.Size),
		Col: rng.Intn(g.Size),
	}
}

// Cells returns the number of cells on the board
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Center returns the middle cell, rounded toward the origin
func (g Grid) Center() Position {
	return Position{Row: (g.Size - 1) / 2, Col: (g.Size - 1) / 2}
}
