package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seat-reservation/booking"
	"seat-reservation/logger"
	"seat-reservation/model"
	"seat-reservation/seating"
	"seat-reservation/service"
	"seat-reservation/store"
)

type appState int

const (
	stateLoadingSeats appState = iota
	stateSeatGrid
	stateBooking
	stateLoadError
)

type appModel struct {
	controller *booking.Controller
	log        *logger.Logger

	state appState
	err   error

	width  int
	height int

	theme  model.Theme
	styles palette

	input   textinput.Model
	spinner spinner.Model

	message    string
	lastBooked []model.SeatNumber
	highlight  map[model.SeatNumber]bool
	previous   []model.SeatNumber
}

type seatsMsg struct {
	seats []model.Seat
	err   error
}

type bookingMsg struct {
	confirmed []model.SeatNumber
	err       error
}

type themeSavedMsg struct {
	err error
}

func New(controller *booking.Controller, log *logger.Logger) tea.Model {
	if log == nil {
		log = logger.Discard()
	}
	theme, err := store.LoadTheme()
	if err != nil {
		log.Warn("THEME", fmt.Sprintf("failed to read theme preference: %v", err))
	}

	m := appModel{
		controller: controller,
		log:        log,
		state:      stateLoadingSeats,
		highlight:  map[model.SeatNumber]bool{},
	}

	in := textinput.New()
	in.Prompt = "Seats: "
	in.Placeholder = "number of seats"
	in.CharLimit = 4
	in.Width = 16
	in.Focus()
	m.input = in

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spinner = sp

	m.applyTheme(theme)

	if recent, err := store.LoadRecentBookings(); err == nil && len(recent) > 0 {
		m.previous = recent[0].SeatNumbers
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.fetchSeatsCmd(), m.spinner.Tick, textinput.Blink)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		// fallthrough to input update

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isBusy() {
			return m, cmd
		}
		return m, nil

	case seatsMsg:
		if msg.err == nil {
			msg.err = m.controller.Apply(msg.seats)
		}
		if msg.err != nil {
			m.err = msg.err
			m.state = stateLoadError
			return m, nil
		}
		m.err = nil
		if m.state != stateBooking {
			m.state = stateSeatGrid
		}
		return m, nil

	case bookingMsg:
		m.controller.Finish(msg.confirmed, msg.err)
		m.state = stateSeatGrid
		cmd := m.input.Focus()
		if msg.err != nil {
			m.message = booking.UserMessage(msg.err)
			if service.IsConflict(msg.err) {
				return m, tea.Batch(cmd, m.fetchSeatsCmd())
			}
			return m, cmd
		}
		m.message = ""
		m.setLastBooked(msg.confirmed)
		m.previous = msg.confirmed
		if err := store.RememberBooking(msg.confirmed); err != nil {
			m.log.Warn("STORE", fmt.Sprintf("failed to save booking history: %v", err))
		}
		return m, cmd

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("THEME", fmt.Sprintf("failed to save theme preference: %v", msg.err))
		}
		return m, nil
	}

	if m.state != stateSeatGrid {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.message = ""
		m.setLastBooked(nil)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoadingSeats:
		return header + "\n\n" + m.loadingView()
	case stateLoadError:
		return header + "\n\n" + m.errorView()
	case stateSeatGrid, stateBooking:
		return header + "\n\n" + m.gridView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := m.styles.title.Render("Train Seat Reservation")
	sub := []string{fmt.Sprintf("Theme: %s", m.theme)}
	if registry := m.controller.Registry(); registry.Len() > 0 {
		available, booked := registry.Counts()
		sub = append(sub, fmt.Sprintf("Available: %d", available), fmt.Sprintf("Booked: %d", booked), fmt.Sprintf("Total: %d", registry.Len()))
	}
	meta := "\n" + m.styles.faint.Render(strings.Join(sub, " • "))

	hints := "ctrl+c quit • enter book • ctrl+r reload • ctrl+t toggle theme"
	switch m.state {
	case stateLoadError:
		hints = "ctrl+c quit • ctrl+r retry • ctrl+t toggle theme"
	case stateBooking:
		hints = "ctrl+c quit • booking in progress"
	}
	return title + meta + "\n" + m.styles.faint.Render(hints)
}

func (m appModel) loadingView() string {
	return fmt.Sprintf("%s Loading seats\n\n%s", m.spinner.View(), m.styles.faint.Render("Fetching data..."))
}

func (m appModel) errorView() string {
	msg := "Failed to load seats."
	if m.err != nil {
		msg = fmt.Sprintf("Failed to load seats: %v", m.err)
	}
	content := strings.Join([]string{
		m.styles.errorText.Render(msg),
		"",
		m.styles.faint.Render("Press ctrl+r to retry or ctrl+c to quit."),
	}, "\n")

	panelStyle := m.styles.panel
	if m.width > 56 {
		panelStyle = panelStyle.Width(min(m.width-8, 84))
	}
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func (m appModel) gridView() string {
	var b strings.Builder
	b.WriteString(renderSeatGrid(m.controller.Registry().Seats(), m.styles, m.highlight))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.state == stateBooking {
		b.WriteString("  " + m.spinner.View() + " Booking...")
	}
	if m.message != "" {
		b.WriteString("\n\n" + m.styles.errorText.Render(m.message))
	}
	if len(m.lastBooked) > 0 {
		b.WriteString("\n\n" + m.styles.title.Render("Booked Seats:") + "\n")
		b.WriteString(m.styles.result.Render(model.JoinSeatNumbers(m.lastBooked)))
	} else if len(m.previous) > 0 {
		b.WriteString("\n\n" + m.styles.faint.Render("Previous booking: "+model.JoinSeatNumbers(m.previous)))
	}
	return b.String()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "ctrl+t":
		m.applyTheme(m.theme.Toggle())
		return m, saveThemeCmd(m.theme), true
	case "ctrl+r":
		if m.state == stateBooking || m.state == stateLoadingSeats {
			return m, nil, true
		}
		m.state = stateLoadingSeats
		m.err = nil
		return m, tea.Batch(m.fetchSeatsCmd(), m.spinner.Tick), true
	case "esc":
		if m.state == stateSeatGrid && m.message != "" {
			m.message = ""
			return m, nil, true
		}
		return m, nil, m.state != stateSeatGrid
	}

	if m.state == stateBooking || m.state == stateLoadingSeats || m.state == stateLoadError {
		// Input is disabled until the pending request resolves.
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		next, cmd := m.startBooking()
		return next, cmd, true
	}
	return m, nil, false
}

func (m appModel) startBooking() (tea.Model, tea.Cmd) {
	count, err := seating.ParseCount(m.input.Value())
	if err != nil {
		m.message = booking.UserMessage(err)
		return m, nil
	}
	m.setLastBooked(nil)
	allocation, err := m.controller.Prepare(count)
	if err != nil {
		m.message = booking.UserMessage(err)
		return m, nil
	}
	if len(allocation) == 0 {
		m.message = "Enter how many seats to book."
		return m, nil
	}

	m.message = ""
	m.state = stateBooking
	m.input.Blur()
	return m, tea.Batch(m.submitCmd(allocation), m.spinner.Tick)
}

func (m *appModel) applyTheme(theme model.Theme) {
	m.theme = model.NormalizeTheme(string(theme))
	m.styles = newPalette(m.theme)
	m.spinner.Style = m.styles.spinner
	m.input.PromptStyle = m.styles.title
}

func (m *appModel) setLastBooked(numbers []model.SeatNumber) {
	m.lastBooked = numbers
	m.highlight = make(map[model.SeatNumber]bool, len(numbers))
	for _, n := range numbers {
		m.highlight[n] = true
	}
}

func (m appModel) isBusy() bool {
	return m.state == stateLoadingSeats || m.state == stateBooking
}

func (m appModel) fetchSeatsCmd() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		seats, err := controller.Fetch(context.Background())
		return seatsMsg{seats: seats, err: err}
	}
}

func (m appModel) submitCmd(allocation []model.Seat) tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		confirmed, err := controller.Submit(context.Background(), allocation)
		return bookingMsg{confirmed: confirmed, err: err}
	}
}

func saveThemeCmd(theme model.Theme) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{err: store.SaveTheme(theme)}
	}
}
