package seating

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seat-reservation/model"
)

func seatsFrom(first int, statuses ...model.SeatStatus) []model.Seat {
	seats := make([]model.Seat, 0, len(statuses))
	for i, status := range statuses {
		seats = append(seats, model.Seat{SeatNumber: model.IntSeatNumber(first + i), Status: status})
	}
	return seats
}

func repeat(status model.SeatStatus, n int) []model.SeatStatus {
	out := make([]model.SeatStatus, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func numbers(seats []model.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, seat := range seats {
		out = append(out, seat.SeatNumber.String())
	}
	return out
}

const (
	a = model.StatusAvailable
	b = model.StatusBooked
)

func TestSelect_SingleRowPrefix(t *testing.T) {
	seats := seatsFrom(1, repeat(a, 7)...)

	got, err := Select(seats, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, numbers(got))
}

func TestSelect_SkipsFullRow(t *testing.T) {
	seats := append(seatsFrom(1, repeat(b, 7)...), seatsFrom(8, repeat(a, 7)...)...)

	got, err := Select(seats, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "9", "10", "11"}, numbers(got))
}

func TestSelect_FallsBackAcrossRows(t *testing.T) {
	statuses := repeat(b, 14)
	statuses[0] = a
	statuses[2] = a
	statuses[8] = a
	seats := seatsFrom(1, statuses...)

	got, err := Select(seats, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "9"}, numbers(got))
}

func TestSelect_ScatteredSeatsFallback(t *testing.T) {
	seats := []model.Seat{
		{SeatNumber: model.IntSeatNumber(1), Status: a},
		{SeatNumber: model.IntSeatNumber(2), Status: b},
		{SeatNumber: model.IntSeatNumber(3), Status: a},
		{SeatNumber: model.IntSeatNumber(4), Status: b},
		{SeatNumber: model.IntSeatNumber(6), Status: b},
		{SeatNumber: model.IntSeatNumber(7), Status: b},
		{SeatNumber: model.IntSeatNumber(8), Status: b},
		{SeatNumber: model.IntSeatNumber(5), Status: a},
	}

	got, err := Select(seats, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "5"}, numbers(got))
}

func TestSelect_InsufficientCapacity(t *testing.T) {
	statuses := repeat(b, 10)
	statuses[3] = a
	statuses[9] = a
	seats := seatsFrom(1, statuses...)
	before := append([]model.Seat(nil), seats...)

	_, err := Select(seats, 5)
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, before, seats)
}

func TestSelect_EdgeCases(t *testing.T) {
	got, err := Select(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Select(nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	_, err = Select(seatsFrom(1, repeat(a, 7)...), 8)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)

	_, err = Select(seatsFrom(1, repeat(a, 7)...), -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelect_ShortLastRow(t *testing.T) {
	statuses := append(repeat(b, 7), a, a)
	seats := seatsFrom(1, statuses...)

	got, err := Select(seats, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "9"}, numbers(got))
}

func TestSelect_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 77))

	for iter := 0; iter < 500; iter++ {
		size := rng.IntN(78)
		statuses := make([]model.SeatStatus, size)
		for i := range statuses {
			if rng.IntN(3) == 0 {
				statuses[i] = a
			} else {
				statuses[i] = b
			}
		}
		seats := seatsFrom(1, statuses...)
		available := availableSeats(seats)
		requested := rng.IntN(10)

		got, err := Select(seats, requested)
		if requested > len(available) {
			require.ErrorIs(t, err, ErrInsufficientCapacity)
			continue
		}
		require.NoError(t, err)
		require.Len(t, got, requested)

		seen := map[model.SeatNumber]bool{}
		for _, seat := range got {
			assert.True(t, seat.IsAvailable())
			assert.False(t, seen[seat.SeatNumber], "duplicate seat %s", seat.SeatNumber)
			seen[seat.SeatNumber] = true
		}

		again, err := Select(seats, requested)
		require.NoError(t, err)
		assert.Equal(t, got, again)

		if requested == 0 {
			continue
		}
		firstRow := -1
		for start := 0; start < size; start += RowSize {
			if len(availableSeats(seats[start:min(start+RowSize, size)])) >= requested {
				firstRow = start / RowSize
				break
			}
		}
		if firstRow >= 0 {
			for _, seat := range got {
				pos := positionOf(seats, seat.SeatNumber)
				assert.Equal(t, firstRow, pos/RowSize)
			}
		} else {
			assert.Equal(t, available[:requested], got)
		}
	}
}

func positionOf(seats []model.Seat, number model.SeatNumber) int {
	for i, seat := range seats {
		if seat.SeatNumber == number {
			return i
		}
	}
	return -1
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = ParseCount("0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, input := range []string{"", "  ", "abc", "2.5", "-1", "3 seats"} {
		_, err := ParseCount(input)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", input)
	}
}
