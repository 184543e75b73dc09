package model

// ShipType is the size class of a ship
type ShipType string

const (
	ShipSmall  ShipType = "small"
	ShipMedium ShipType = "medium"
	ShipLarge  ShipType = "large"
	ShipHuge   ShipType = "huge"
)

// shipLengths maps each ship type to its conventional length
var shipLengths = map[ShipType]int{
	ShipSmall:  1,
	ShipMedium: 2,
	ShipLarge:  3,
	ShipHuge:   4,
}

// Length returns the conventional length for the type, or 0 if unknown
func (t ShipType) Length() int {
	return shipLengths[t]
}

// IsValid returns true for the four known ship types
func (t ShipType) IsValid() bool {
	_, ok := shipLengths[t]
	return ok
}

// FleetComposition is the required number of ships per type
func FleetComposition() map[ShipType]int {
	return map[ShipType]int{
		ShipSmall:  4,
		ShipMedium: 3,
		ShipLarge:  2,
		ShipHuge:   1,
	}
}

// Ship is an accepted placement. Immutable once a fleet is stored.
type Ship struct {
	Position Position // anchor: top-left cell
	Vertical bool     // true extends along Y, false along X
	Length   int
	Type     ShipType
}

// Cells returns the positions the ship occupies
func (s Ship) Cells() []Position {
	cells := make([]Position, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		cells = append(cells, s.cell(i))
	}
	return cells
}

// Contains returns true if the ship occupies pos
func (s Ship) Contains(pos Position) bool {
	for i := 0; i < s.Length; i++ {
		if s.cell(i) == pos {
			return true
		}
	}
	return false
}

// Surrounding returns the in-bounds cells of the one-cell ring around the ship,
// excluding the ship's own cells
func (s Ship) Surrounding() []Position {
	var ring []Position
	for i := -1; i <= s.Length; i++ {
		for j := -1; j <= 1; j++ {
			if i >= 0 && i < s.Length && j == 0 {
				continue
			}
			pos := s.offset(i, j)
			if pos.InBounds() {
				ring = append(ring, pos)
			}
		}
	}
	return ring
}

func (s Ship) cell(i int) Position {
	return s.offset(i, 0)
}

// offset walks i cells along the ship's axis and j cells across it
func (s Ship) offset(i, j int) Position {
	if s.Vertical {
		return Position{X: s.Position.X + j, Y: s.Position.Y + i}
	}
	return Position{X: s.Position.X + i, Y: s.Position.Y + j}
}
