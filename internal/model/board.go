package model

// BoardSize is the dimension of every board
const BoardSize = 10

// Position identifies a cell on the board
type Position struct {
	X int // column, 0-indexed from left
	Y int // row, 0-indexed from top
}

// InBounds returns true if the position lies on a BoardSize board
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// CellState is the content of a single board cell
type CellState int

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
)

// IsAttacked returns true once a cell has been fired upon
func (c CellState) IsAttacked() bool {
	return c == CellHit || c == CellMiss
}

// Board is a player's 10x10 grid
type Board struct {
	Cells [][]CellState // Row-major: Cells[y][x]
}

// NewBoard creates an empty board
func NewBoard() *Board {
	cells := make([][]CellState, BoardSize)
	for i := range cells {
		cells[i] = make([]CellState, BoardSize)
	}
	return &Board{Cells: cells}
}

// Get returns the state at the given position, or CellEmpty if out of bounds
func (b *Board) Get(pos Position) CellState {
	if !pos.InBounds() {
		return CellEmpty
	}
	return b.Cells[pos.Y][pos.X]
}

// Set updates the state at the given position
func (b *Board) Set(pos Position, state CellState) {
	if pos.InBounds() {
		b.Cells[pos.Y][pos.X] = state
	}
}

// Count returns the number of cells in the given state
func (b *Board) Count(state CellState) int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Cells[y][x] == state {
				count++
			}
		}
	}
	return count
}

// HasShipCells returns true while any unrevealed ship cell remains
func (b *Board) HasShipCells() bool {
	return b.Count(CellShip) > 0
}

// Unattacked returns every position not yet hit or missed, row by row
func (b *Board) Unattacked() []Position {
	var positions []Position
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if !b.Cells[y][x].IsAttacked() {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}
