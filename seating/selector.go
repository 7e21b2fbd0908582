package seating

import (
	"fmt"
	"strconv"
	"strings"

	"seat-reservation/model"
)

// RowSize is the number of consecutive seats that make up one row.
const RowSize = 7

// Select picks requested seats from the snapshot. The first row that can seat the
// whole party wins; otherwise the earliest available seats are used across rows.
// The input slice is never modified.
func Select(seats []model.Seat, requested int) ([]model.Seat, error) {
	if requested < 0 {
		return nil, fmt.Errorf("%w: seat count must not be negative, got %d", ErrInvalidArgument, requested)
	}
	if requested == 0 {
		return []model.Seat{}, nil
	}

	available := availableSeats(seats)
	if len(available) < requested {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientCapacity, requested, len(available))
	}

	for start := 0; start < len(seats); start += RowSize {
		row := availableSeats(seats[start:min(start+RowSize, len(seats))])
		if len(row) >= requested {
			return row[:requested:requested], nil
		}
	}

	return available[:requested:requested], nil
}

// ParseCount turns user input into a seat count.
func ParseCount(text string) (int, error) {
	value := strings.TrimSpace(text)
	if value == "" {
		return 0, fmt.Errorf("%w: seat count is required", ErrInvalidArgument)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidArgument, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: seat count must not be negative, got %d", ErrInvalidArgument, n)
	}
	return n, nil
}

func availableSeats(seats []model.Seat) []model.Seat {
	out := make([]model.Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.IsAvailable() {
			out = append(out, seat)
		}
	}
	return out
}
