package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"seat-reservation/model"
	"seat-reservation/seating"
)

func newSeatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seats",
		Short: "Print the current seat map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := commandContext(cmd, a.cfg.API.Timeout*time.Duration(a.cfg.API.MaxAttempts+1))
			defer cancel()
			if err := a.controller.Load(ctx); err != nil {
				return fmt.Errorf("failed to load seats: %w", err)
			}

			renderSeatTable(cmd, a.controller.Registry())
			return nil
		},
	}
}

func renderSeatTable(cmd *cobra.Command, registry *seating.Registry) {
	header := table.Row{"Row"}
	for i := 1; i <= seating.RowSize; i++ {
		header = append(header, strconv.Itoa(i))
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(header)
	for i, row := range registry.Rows() {
		cells := table.Row{i + 1}
		for _, seat := range row {
			cells = append(cells, seatCell(seat))
		}
		t.AppendRow(cells)
	}
	available, booked := registry.Counts()
	t.AppendFooter(table.Row{"", fmt.Sprintf("Available: %d • Booked: %d • Total: %d", available, booked, registry.Len())})
	t.Render()
}

func seatCell(seat model.Seat) string {
	if seat.IsAvailable() {
		return text.FgGreen.Sprint(seat.SeatNumber.String())
	}
	return text.FgRed.Sprint(seat.SeatNumber.String() + "✗")
}
