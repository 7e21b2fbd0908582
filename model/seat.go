package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusBooked    SeatStatus = "booked"
)

// IsAvailable reports whether the status allows booking. Anything other than
// "available" (case-insensitive) is treated as taken.
func (s SeatStatus) IsAvailable() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(StatusAvailable))
}

type Seat struct {
	SeatNumber SeatNumber `json:"seatNumber"`
	Status     SeatStatus `json:"status"`
}

func (s Seat) IsAvailable() bool {
	return s.Status.IsAvailable()
}

// SeatNumber is the identifier assigned by the seat API. The API may send it as a
// JSON number or a JSON string; it is echoed back in the same form when booking.
type SeatNumber struct {
	value   string
	numeric bool
}

func IntSeatNumber(n int) SeatNumber {
	return SeatNumber{value: strconv.Itoa(n), numeric: true}
}

func StringSeatNumber(s string) SeatNumber {
	return SeatNumber{value: s}
}

func (n SeatNumber) String() string {
	return n.value
}

func (n SeatNumber) IsZero() bool {
	return n.value == ""
}

func (n SeatNumber) IsNumeric() bool {
	return n.numeric
}

func (n SeatNumber) MarshalJSON() ([]byte, error) {
	if n.numeric {
		return []byte(n.value), nil
	}
	return json.Marshal(n.value)
}

func (n *SeatNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("seat number is required")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = SeatNumber{value: s}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid seat number %s: %w", data, err)
	}
	*n = SeatNumber{value: num.String(), numeric: true}
	return nil
}

// SeatNumbers returns the identifiers of the given seats, in order.
func SeatNumbers(seats []Seat) []SeatNumber {
	out := make([]SeatNumber, 0, len(seats))
	for _, seat := range seats {
		out = append(out, seat.SeatNumber)
	}
	return out
}

// JoinSeatNumbers formats identifiers the way they are shown to the user: "8, 9, 10".
func JoinSeatNumbers(numbers []SeatNumber) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, ", ")
}
