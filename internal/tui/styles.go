package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Padding(0, 1)
	themeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	clockStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "117"}).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	bigStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1)
	lapStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "238", Dark: "252"})
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
	bodyStyle   = lipgloss.NewStyle().Padding(0, 2)

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "236", Dark: "254"})
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)

	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	alertDimmed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")).Padding(0, 1)
	spinnerTint = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// hexColor converts a panel color into a lipgloss color.
func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// button renders a control label, struck through while disabled.
func button(label string, enabled bool) string {
	if enabled {
		return labelStyle.Render("[" + label + "]")
	}
	return disabledStyle.Render("[" + label + "]")
}
