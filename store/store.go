package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seat-reservation/model"
)

const (
	appDir            = "seat-reservation"
	themeFile         = "theme.json"
	bookingsFile      = "bookings.json"
	maxRecentBookings = 8
)

type themePreference struct {
	Theme string `json:"theme"`
}

type RecentBooking struct {
	SeatNumbers []model.SeatNumber `json:"seat_numbers"`
	BookedAt    time.Time          `json:"booked_at"`
}

type bookingHistory struct {
	Bookings []RecentBooking `json:"bookings"`
}

// LoadTheme returns the stored theme. A missing file means light; any stored
// value other than "dark" is read as light.
func LoadTheme() (model.Theme, error) {
	path, err := configPath(themeFile)
	if err != nil {
		return model.ThemeLight, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.ThemeLight, nil
		}
		return model.ThemeLight, err
	}

	var pref themePreference
	if err := json.Unmarshal(data, &pref); err == nil {
		return model.NormalizeTheme(pref.Theme), nil
	}
	// Plain-text value, as written by hand.
	return model.NormalizeTheme(strings.TrimSpace(string(data))), nil
}

func SaveTheme(theme model.Theme) error {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return errors.New("theme must be light or dark")
	}
	path, err := configPath(themeFile)
	if err != nil {
		return err
	}
	return writeJSON(path, themePreference{Theme: string(theme)})
}

// LoadRecentBookings returns the most recent bookings, newest first.
func LoadRecentBookings() ([]RecentBooking, error) {
	path, err := configPath(bookingsFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history bookingHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid booking history format")
	}
	return history.Bookings, nil
}

func RememberBooking(numbers []model.SeatNumber) error {
	if len(numbers) == 0 {
		return errors.New("seat numbers are required")
	}
	history, _ := LoadRecentBookings()
	next := []RecentBooking{{
		SeatNumbers: append([]model.SeatNumber(nil), numbers...),
		BookedAt:    time.Now().UTC(),
	}}
	for _, existing := range history {
		if len(next) >= maxRecentBookings {
			break
		}
		next = append(next, existing)
	}

	path, err := configPath(bookingsFile)
	if err != nil {
		return err
	}
	return writeJSON(path, bookingHistory{Bookings: next})
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
