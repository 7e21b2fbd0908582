// Package servicetest provides an in-process seat API for tests.
package servicetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"seat-reservation/model"
)

// Server serves GET /seats and POST /seats/book from memory. Booking is
// conditional: if any requested seat is unknown or not available the whole
// request is refused.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	seats       []model.Seat
	bookings    [][]model.SeatNumber
	requestIDs  []string
	loadCalls   int
	failLoads   int
	failStatus  int
	bookFailure int
}

func NewServer(seats []model.Seat) *Server {
	s := &Server{seats: append([]model.Seat(nil), seats...)}

	r := chi.NewRouter()
	r.Get("/seats", s.handleSeats)
	r.Post("/seats/book", s.handleBook)
	s.Server = httptest.NewServer(r)
	return s
}

// NumberedSeats returns seats 1..n; the listed numbers are booked.
func NumberedSeats(n int, booked ...int) []model.Seat {
	taken := make(map[int]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	seats := make([]model.Seat, 0, n)
	for i := 1; i <= n; i++ {
		status := model.StatusAvailable
		if taken[i] {
			status = model.StatusBooked
		}
		seats = append(seats, model.Seat{SeatNumber: model.IntSeatNumber(i), Status: status})
	}
	return seats
}

func (s *Server) Seats() []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Seat(nil), s.seats...)
}

func (s *Server) SetSeats(seats []model.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats = append([]model.Seat(nil), seats...)
}

// Bookings returns every accepted booking request in arrival order.
func (s *Server) Bookings() [][]model.SeatNumber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]model.SeatNumber(nil), s.bookings...)
}

func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) LoadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCalls
}

// FailNextLoads makes the next n seat list requests answer with status.
func (s *Server) FailNextLoads(n int, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoads = n
	s.failStatus = status
}

// FailNextBooking makes the next booking request answer with status.
func (s *Server) FailNextBooking(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookFailure = status
}

func (s *Server) handleSeats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.loadCalls++
	if s.failLoads > 0 {
		s.failLoads--
		status := s.failStatus
		s.mu.Unlock()
		http.Error(w, http.StatusText(status), status)
		return
	}
	seats := append([]model.Seat(nil), s.seats...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, seats)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SeatNumbers []model.SeatNumber `json:"seatNumbers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.SeatNumbers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "seatNumbers is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))

	if status := s.bookFailure; status != 0 {
		s.bookFailure = 0
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	positions := make([]int, 0, len(req.SeatNumbers))
	for _, number := range req.SeatNumbers {
		pos := -1
		for i, seat := range s.seats {
			if seat.SeatNumber == number {
				pos = i
				break
			}
		}
		if pos < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("seat %s not found", number)})
			return
		}
		if !s.seats[pos].IsAvailable() {
			writeJSON(w, http.StatusConflict, map[string]string{"message": fmt.Sprintf("seat %s is already booked", number)})
			return
		}
		positions = append(positions, pos)
	}

	for _, pos := range positions {
		s.seats[pos].Status = model.StatusBooked
	}
	s.bookings = append(s.bookings, append([]model.SeatNumber(nil), req.SeatNumbers...))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Seats booked successfully"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
