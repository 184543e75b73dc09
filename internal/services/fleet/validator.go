package fleet

import (
	"fmt"

	"github.com/mcoot/seabattle-go/internal/model"
)

// Validator checks proposed fleets against the placement rules
type Validator struct{}

// NewValidator creates a new fleet Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate rejects the fleet as a whole on the first failing rule.
// Rules are checked in order: composition, bounds, then overlap and adjacency.
func (v *Validator) Validate(ships []model.Ship) error {
	if err := checkComposition(ships); err != nil {
		return err
	}

	for i, ship := range ships {
		for _, pos := range ship.Cells() {
			if !pos.InBounds() {
				return fmt.Errorf("%w: ship %d leaves the board at (%d,%d)", model.ErrInvalidFleet, i, pos.X, pos.Y)
			}
		}
	}

	board := model.NewBoard()
	for i, ship := range ships {
		for _, pos := range ship.Cells() {
			if board.Get(pos) == model.CellShip {
				return fmt.Errorf("%w: ship %d overlaps at (%d,%d)", model.ErrInvalidFleet, i, pos.X, pos.Y)
			}
		}
		for _, pos := range ship.Surrounding() {
			if board.Get(pos) == model.CellShip {
				return fmt.Errorf("%w: ship %d touches another at (%d,%d)", model.ErrInvalidFleet, i, pos.X, pos.Y)
			}
		}
		for _, pos := range ship.Cells() {
			board.Set(pos, model.CellShip)
		}
	}

	return nil
}

// IsValid reports whether Validate accepts the fleet
func (v *Validator) IsValid(ships []model.Ship) bool {
	return v.Validate(ships) == nil
}

// PlaceShips builds a board with every ship cell marked. Ships must already be validated.
func (v *Validator) PlaceShips(ships []model.Ship) *model.Board {
	board := model.NewBoard()
	for _, ship := range ships {
		for _, pos := range ship.Cells() {
			board.Set(pos, model.CellShip)
		}
	}
	return board
}

func checkComposition(ships []model.Ship) error {
	required := model.FleetComposition()

	counts := make(map[model.ShipType]int)
	for i, ship := range ships {
		if !ship.Type.IsValid() {
			return fmt.Errorf("%w: ship %d has unknown type %q", model.ErrInvalidFleet, i, ship.Type)
		}
		if ship.Length != ship.Type.Length() {
			return fmt.Errorf("%w: ship %d is %s but has length %d", model.ErrInvalidFleet, i, ship.Type, ship.Length)
		}
		counts[ship.Type]++
	}

	for shipType, want := range required {
		if counts[shipType] != want {
			return fmt.Errorf("%w: want %d %s ships, got %d", model.ErrInvalidFleet, want, shipType, counts[shipType])
		}
	}
	return nil
}
