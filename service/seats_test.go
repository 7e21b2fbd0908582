package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"seat-reservation/model"
	"seat-reservation/service/servicetest"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/bad-request", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryDelay_Caps(t *testing.T) {
	client := NewClient(nil, "")
	client.retryBase = 100 * time.Millisecond
	client.retryCap = 300 * time.Millisecond

	if got := client.retryDelay(1); got != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %s", got)
	}
	if got := client.retryDelay(2); got != 200*time.Millisecond {
		t.Fatalf("expected 200ms, got %s", got)
	}
	if got := client.retryDelay(5); got != 300*time.Millisecond {
		t.Fatalf("expected 300ms, got %s", got)
	}
}

func TestNewClient_DefaultsBaseURL(t *testing.T) {
	if got := NewClient(nil, "").BaseURL(); got != defaultBaseURL {
		t.Fatalf("unexpected base url: %s", got)
	}
	if got := NewClient(nil, " http://localhost:3000/ ").BaseURL(); got != "http://localhost:3000" {
		t.Fatalf("unexpected base url: %s", got)
	}
}

func TestGetSeats_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/seats" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"seatNumber": 1, "status": "available"},
  {"seatNumber": 2, "status": "booked"},
  {"seatNumber": "3", "status": "available"}
]`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	seats, err := client.GetSeats(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(seats))
	}
	if seats[0].SeatNumber != model.IntSeatNumber(1) || !seats[0].IsAvailable() {
		t.Fatalf("unexpected first seat: %+v", seats[0])
	}
	if seats[1].IsAvailable() {
		t.Fatalf("expected seat 2 booked, got %+v", seats[1])
	}
	if seats[2].SeatNumber != model.StringSeatNumber("3") {
		t.Fatalf("expected string seat number, got %+v", seats[2].SeatNumber)
	}
}

func TestGetSeats_FailureIsRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	_, err := client.GetSeats(context.Background())
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetSeats_TransportFailureIsRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(nil, url)
	client.maxAttempts = 1

	_, err := client.GetSeats(context.Background())
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not look like an api error: %v", err)
	}
}

func TestBookSeats_SendsSingleRequest(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/seats/book" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Fatal("expected request id header")
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string][]json.RawMessage
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("invalid body %s: %v", body, err)
		}
		got := payload["seatNumbers"]
		if len(got) != 2 || string(got[0]) != "8" || string(got[1]) != `"9A"` {
			t.Fatalf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)

	confirmed, err := client.BookSeats(context.Background(), []model.SeatNumber{model.IntSeatNumber(8), model.StringSeatNumber("9A")})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(confirmed) != 2 {
		t.Fatalf("expected 2 confirmed seats, got %d", len(confirmed))
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestBookSeats_DoesNotRetryServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	client.retryBase = time.Millisecond

	_, err := client.BookSeats(context.Background(), []model.SeatNumber{model.IntSeatNumber(1)})
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestBookSeats_RejectsEmptyAllocation(t *testing.T) {
	client := NewClient(nil, "http://127.0.0.1:1")
	if _, err := client.BookSeats(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestBookSeats_ConflictAgainstFakeAPI(t *testing.T) {
	api := servicetest.NewServer(servicetest.NumberedSeats(14, 9))
	defer api.Close()

	client := NewClient(api.Client(), api.URL)

	_, err := client.BookSeats(context.Background(), []model.SeatNumber{model.IntSeatNumber(8), model.IntSeatNumber(9)})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(api.Bookings()) != 0 {
		t.Fatalf("expected no accepted booking, got %+v", api.Bookings())
	}

	confirmed, err := client.BookSeats(context.Background(), []model.SeatNumber{model.IntSeatNumber(8), model.IntSeatNumber(10)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if model.JoinSeatNumbers(confirmed) != "8, 10" {
		t.Fatalf("unexpected confirmed seats: %v", confirmed)
	}
	ids := api.RequestIDs()
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected distinct request ids, got %v", ids)
	}
}
