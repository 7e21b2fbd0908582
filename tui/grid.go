package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"seat-reservation/model"
	"seat-reservation/seating"
)

const (
	// leftBlockSeats is how many seats go in the left block of the coach layout.
	leftBlockSeats = 42
	cellWidth      = 4
	aisle          = "     "
)

// renderSeatGrid draws the coach: the first 42 seats on the left, the rest on the
// right, RowSize seats per line.
func renderSeatGrid(seats []model.Seat, styles palette, highlight map[model.SeatNumber]bool) string {
	if len(seats) == 0 {
		return styles.faint.Render("No seats to show.")
	}
	split := min(leftBlockSeats, len(seats))
	left := renderSeatBlock(seats[:split], styles, highlight)
	if split == len(seats) {
		return left
	}
	right := renderSeatBlock(seats[split:], styles, highlight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, aisle, right)
}

func renderSeatBlock(seats []model.Seat, styles palette, highlight map[model.SeatNumber]bool) string {
	var lines []string
	for start := 0; start < len(seats); start += seating.RowSize {
		end := min(start+seating.RowSize, len(seats))
		cells := make([]string, 0, seating.RowSize)
		for _, seat := range seats[start:end] {
			cells = append(cells, renderSeat(seat, styles, highlight))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n\n")
}

func renderSeat(seat model.Seat, styles palette, highlight map[model.SeatNumber]bool) string {
	text := padCell(seat.SeatNumber.String(), cellWidth)
	switch {
	case highlight[seat.SeatNumber]:
		return styles.justTaken.Render(text)
	case seat.IsAvailable():
		return styles.available.Render(text)
	default:
		return styles.booked.Render(text)
	}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
