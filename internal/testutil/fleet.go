package testutil

import "github.com/mcoot/seabattle-go/internal/model"

// ValidFleet returns a legal 10-ship fleet. Every ship lies on rows 0, 2 or 4.
//
//	y=0: huge x0-3, large x5-7
//	y=2: large x0-2, medium x5-6, medium x8-9
//	y=4: medium x0-1, small x3, x5, x7, x9
func ValidFleet() []model.Ship {
	h := func(x, y, length int, t model.ShipType) model.Ship {
		return model.Ship{Position: model.Position{X: x, Y: y}, Length: length, Type: t}
	}
	return []model.Ship{
		h(0, 0, 4, model.ShipHuge),
		h(5, 0, 3, model.ShipLarge),
		h(0, 2, 3, model.ShipLarge),
		h(5, 2, 2, model.ShipMedium),
		h(8, 2, 2, model.ShipMedium),
		h(0, 4, 2, model.ShipMedium),
		h(3, 4, 1, model.ShipSmall),
		h(5, 4, 1, model.ShipSmall),
		h(7, 4, 1, model.ShipSmall),
		h(9, 4, 1, model.ShipSmall),
	}
}

// FleetCells returns every occupied cell of the fleet
func FleetCells(ships []model.Ship) []model.Position {
	var cells []model.Position
	for _, s := range ships {
		cells = append(cells, s.Cells()...)
	}
	return cells
}
