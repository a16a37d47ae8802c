package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dots/internal/games/dots/core"
)

// Theme contains all visual styles for the board, HUD and menus.
type Theme struct {
	Dots      [core.ColorCount]lipgloss.Style
	Rainbow   lipgloss.Style
	Empty     lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	BoardEdge lipgloss.Style
	Letters   bool // draw color initials instead of dots

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
	HUDWarning   lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme. Dot colors use each
// color's hex value.
func DefaultTheme() Theme {
	var dots [core.ColorCount]lipgloss.Style
	for _, c := range core.AllColors() {
		dots[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true)
	}
	return Theme{
		Dots:      dots,
		Rainbow:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		BoardEdge: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),

		OverlayBorder: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("255")).Padding(0, 2),
		OverlayTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
// Colors stay distinguishable through their letters.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	for _, c := range core.AllColors() {
		theme.Dots[c] = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	}
	theme.Letters = true
	return theme
}
