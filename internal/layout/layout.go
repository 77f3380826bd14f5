// Package layout generates a room's seat grid from its capacity and
// special-seat counts. Generation is deterministic: the same
// (capacity, coupleSeats, pcdSeats, rowWidth) always yields the same
// grid.
package layout

import (
	"cinema-booking/internal/model"
	"cinema-booking/internal/service"
)

// DefaultRowWidth is the number of seats per lettered row unless the
// caller configures otherwise.
const DefaultRowWidth = 10

// Generate builds the seat list for a room. Couple seats are placed
// first (each consumes two capacity units), then accessible seats,
// then normal seats fill the remaining units. Rows are labelled
// A, B, C... wrapping after rowWidth seats; numbers restart at 1 per
// row.
func Generate(capacity, coupleSeats, pcdSeats, rowWidth int) ([]model.Seat, error) {
	if capacity <= 0 {
		return nil, service.Invalidf("capacity must be positive")
	}
	if coupleSeats < 0 || pcdSeats < 0 {
		return nil, service.Invalidf("seat counts must not be negative")
	}
	if 2*coupleSeats+pcdSeats > capacity {
		return nil, service.Invalidf("special seats exceed capacity")
	}
	if rowWidth <= 0 {
		rowWidth = DefaultRowWidth
	}

	normalSeats := capacity - 2*coupleSeats - pcdSeats
	seats := make([]model.Seat, 0, coupleSeats+pcdSeats+normalSeats)

	next := placer{rowWidth: rowWidth}
	for i := 0; i < coupleSeats; i++ {
		seats = append(seats, next.seat(model.SeatCouple))
	}
	for i := 0; i < pcdSeats; i++ {
		seats = append(seats, next.seat(model.SeatAccessible))
	}
	for i := 0; i < normalSeats; i++ {
		seats = append(seats, next.seat(model.SeatNormal))
	}
	return seats, nil
}

type placer struct {
	rowWidth int
	index    int
}

func (p *placer) seat(t model.SeatType) model.Seat {
	row := rowLabel(p.index / p.rowWidth)
	number := p.index%p.rowWidth + 1
	p.index++
	return model.Seat{Row: row, Number: number, Type: t}
}

// rowLabel maps 0 -> "A", 25 -> "Z", 26 -> "AA", like spreadsheet
// columns, so very large rooms still get unique row labels.
func rowLabel(row int) string {
	label := ""
	for {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
		if row < 0 {
			return label
		}
	}
}
