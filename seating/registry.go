package seating

import (
	"fmt"

	"seat-reservation/model"
)

// Registry is the local snapshot of the seat list. Order is meaningful: it defines
// rows of RowSize seats by position. It is not safe for concurrent use; the owner
// mutates it from a single goroutine.
type Registry struct {
	seats []model.Seat
	index map[model.SeatNumber]int
}

func NewRegistry() *Registry {
	return &Registry{index: map[model.SeatNumber]int{}}
}

// Replace swaps the whole snapshot. A list with a missing or duplicate seat number
// is rejected and the previous snapshot is kept.
func (r *Registry) Replace(seats []model.Seat) error {
	index := make(map[model.SeatNumber]int, len(seats))
	for i, seat := range seats {
		if seat.SeatNumber.IsZero() {
			return fmt.Errorf("%w: seat at position %d has no seat number", ErrInvalidArgument, i)
		}
		if prev, ok := index[seat.SeatNumber]; ok {
			return fmt.Errorf("%w: seat number %s appears at positions %d and %d", ErrInvalidArgument, seat.SeatNumber, prev, i)
		}
		index[seat.SeatNumber] = i
	}
	r.seats = append([]model.Seat(nil), seats...)
	r.index = index
	return nil
}

func (r *Registry) Len() int {
	return len(r.seats)
}

// Seats returns a copy of the snapshot.
func (r *Registry) Seats() []model.Seat {
	return append([]model.Seat(nil), r.seats...)
}

func (r *Registry) Available() []model.Seat {
	return availableSeats(r.seats)
}

// Rows splits the snapshot into rows of RowSize; the last row may be short.
func (r *Registry) Rows() [][]model.Seat {
	var rows [][]model.Seat
	for start := 0; start < len(r.seats); start += RowSize {
		end := min(start+RowSize, len(r.seats))
		rows = append(rows, append([]model.Seat(nil), r.seats[start:end]...))
	}
	return rows
}

func (r *Registry) Counts() (available int, booked int) {
	for _, seat := range r.seats {
		if seat.IsAvailable() {
			available++
		} else {
			booked++
		}
	}
	return available, booked
}

// Select runs the allocation heuristic against the current snapshot.
func (r *Registry) Select(requested int) ([]model.Seat, error) {
	return Select(r.seats, requested)
}

// MarkBooked flips the given seats to booked and returns how many changed.
// Unknown numbers and seats that are already booked are skipped.
func (r *Registry) MarkBooked(numbers []model.SeatNumber) int {
	changed := 0
	for _, number := range numbers {
		i, ok := r.index[number]
		if !ok || !r.seats[i].IsAvailable() {
			continue
		}
		r.seats[i].Status = model.StatusBooked
		changed++
	}
	return changed
}
