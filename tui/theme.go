package tui

import (
	"github.com/charmbracelet/lipgloss"
	"seat-reservation/model"
)

type palette struct {
	title     lipgloss.Style
	faint     lipgloss.Style
	errorText lipgloss.Style
	available lipgloss.Style
	booked    lipgloss.Style
	justTaken lipgloss.Style
	result    lipgloss.Style
	panel     lipgloss.Style
	spinner   lipgloss.Style
}

func newPalette(theme model.Theme) palette {
	seat := lipgloss.NewStyle().Bold(true)
	if theme == model.ThemeDark {
		return palette{
			title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			faint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("250")),
			errorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			available: seat.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("28")),
			booked:    seat.Foreground(lipgloss.Color("250")).Background(lipgloss.Color("88")),
			justTaken: seat.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")),
			result: lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("238")).
				Padding(0, 2),
			panel: lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("63")),
			spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		}
	}
	return palette{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		faint:     lipgloss.NewStyle().Faint(true),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		available: seat.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("34")),
		booked:    seat.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")),
		justTaken: seat.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")),
		result: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("252")).
			Padding(0, 2),
		panel: lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("33")),
		spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
}
