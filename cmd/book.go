package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"seat-reservation/booking"
	"seat-reservation/model"
	"seat-reservation/seating"
	"seat-reservation/store"
)

func newBookCommand(opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book seats, together in one row when possible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := count
			if !cmd.Flags().Changed("count") {
				n, err := promptSeatCount()
				if err != nil {
					return err
				}
				requested = n
			} else if requested < 0 {
				return fmt.Errorf("%s (%w)", booking.UserMessage(seating.ErrInvalidArgument), seating.ErrInvalidArgument)
			}

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

			confirmed, err := a.controller.Book(ctx, requested)
			if err != nil {
				return fmt.Errorf("%s (%w)", booking.UserMessage(err), err)
			}
			if len(confirmed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to book.")
				return nil
			}
			if err := store.RememberBooking(confirmed); err != nil {
				a.log.Warn("STORE", fmt.Sprintf("failed to save booking history: %v", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked seats: %s\n", model.JoinSeatNumbers(confirmed))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of seats to book")
	return cmd
}

func promptSeatCount() (int, error) {
	prompt := promptui.Prompt{
		Label: "Number of seats",
		Validate: func(input string) error {
			_, err := seating.ParseCount(input)
			return err
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return seating.ParseCount(value)
}
