// Package booking owns the local seat snapshot and drives one booking at a time
// through the remote gateway.
package booking

import (
	"context"
	"errors"
	"fmt"

	"seat-reservation/logger"
	"seat-reservation/model"
	"seat-reservation/seating"
	"seat-reservation/service"
)

// ErrBookingInFlight is returned when a booking is requested while another one
// has not finished yet.
var ErrBookingInFlight = errors.New("a booking is already in progress")

// Gateway is the remote side of the seat service.
type Gateway interface {
	GetSeats(ctx context.Context) ([]model.Seat, error)
	BookSeats(ctx context.Context, numbers []model.SeatNumber) ([]model.SeatNumber, error)
}

// Controller is the single owner of the seat registry. State-changing methods
// (Apply, Prepare, Finish) must be called from one goroutine; Fetch and Submit
// only talk to the gateway and may run elsewhere.
type Controller struct {
	gateway  Gateway
	registry *seating.Registry
	log      *logger.Logger
	inFlight bool
}

func NewController(gateway Gateway, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		gateway:  gateway,
		registry: seating.NewRegistry(),
		log:      log,
	}
}

// Registry exposes the snapshot for rendering.
func (c *Controller) Registry() *seating.Registry {
	return c.registry
}

func (c *Controller) InFlight() bool {
	return c.inFlight
}

// Fetch loads the seat list from the gateway without touching local state.
func (c *Controller) Fetch(ctx context.Context) ([]model.Seat, error) {
	seats, err := c.gateway.GetSeats(ctx)
	if err != nil {
		c.log.Error("SEATS", fmt.Sprintf("load failed: %v", err))
		return nil, err
	}
	return seats, nil
}

// Apply replaces the snapshot with a freshly fetched seat list.
func (c *Controller) Apply(seats []model.Seat) error {
	if err := c.registry.Replace(seats); err != nil {
		c.log.Error("SEATS", fmt.Sprintf("rejected seat list: %v", err))
		return err
	}
	available, booked := c.registry.Counts()
	c.log.Info("SEATS", fmt.Sprintf("loaded %d seats (%d available, %d booked)", c.registry.Len(), available, booked))
	return nil
}

// Load fetches and applies the seat list.
func (c *Controller) Load(ctx context.Context) error {
	seats, err := c.Fetch(ctx)
	if err != nil {
		return err
	}
	return c.Apply(seats)
}

// Prepare computes the allocation for requested seats from the current snapshot.
// A non-empty allocation marks the booking in flight until Finish is called.
func (c *Controller) Prepare(requested int) ([]model.Seat, error) {
	if c.inFlight {
		return nil, ErrBookingInFlight
	}
	allocation, err := c.registry.Select(requested)
	if err != nil {
		c.log.Warn("BOOKING", fmt.Sprintf("cannot allocate %d seats: %v", requested, err))
		return nil, err
	}
	if len(allocation) > 0 {
		c.inFlight = true
		c.log.LogBooking("PREPARE", model.JoinSeatNumbers(model.SeatNumbers(allocation)), fmt.Sprintf("allocated %d seats", len(allocation)))
	}
	return allocation, nil
}

// Submit sends the booking request for a prepared allocation.
func (c *Controller) Submit(ctx context.Context, allocation []model.Seat) ([]model.SeatNumber, error) {
	if len(allocation) == 0 {
		return nil, nil
	}
	return c.gateway.BookSeats(ctx, model.SeatNumbers(allocation))
}

// Finish records the outcome of Submit. On success the confirmed seats are
// marked booked; on failure the snapshot is left as it was.
func (c *Controller) Finish(confirmed []model.SeatNumber, err error) {
	c.inFlight = false
	if err != nil {
		c.log.Error("BOOKING", fmt.Sprintf("booking failed: %v", err))
		return
	}
	if len(confirmed) == 0 {
		return
	}
	changed := c.registry.MarkBooked(confirmed)
	c.log.LogBooking("CONFIRM", model.JoinSeatNumbers(confirmed), fmt.Sprintf("%d seats marked booked", changed))
}

// Book runs a whole booking synchronously.
func (c *Controller) Book(ctx context.Context, requested int) ([]model.SeatNumber, error) {
	allocation, err := c.Prepare(requested)
	if err != nil {
		return nil, err
	}
	if len(allocation) == 0 {
		return nil, nil
	}
	confirmed, err := c.Submit(ctx, allocation)
	c.Finish(confirmed, err)
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// UserMessage maps an error to the short text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, seating.ErrInvalidArgument):
		return "Enter a valid number of seats."
	case errors.Is(err, seating.ErrInsufficientCapacity):
		return "Not enough seats available!"
	case errors.Is(err, ErrBookingInFlight):
		return "Booking in progress, please wait."
	case service.IsConflict(err):
		return "Failed to book seats! Some seats were just taken, refreshing."
	default:
		return "Failed to book seats!"
	}
}
