// Package lipgloss provides theme and tracked-change rendering using the
// Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/redline"

// Compile-time interface verification.
var _ redline.Theme = (*Theme)(nil)

// Theme implements redline.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles redline.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() redline.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme for name ("dark" or "light"), falling back
// to the default theme.
func ThemeByName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DefaultTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: redline.Styles{
			Inserted: redline.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#004000", // Very dark green
			},
			Deleted: redline.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001", // Very dark red
			},
			Highlight: redline.ColorPair{
				Foreground: "#1e1e2e", // Dark text on bright background
				Background: "#f9e2af", // Yellow
			},
			Comment: redline.ColorPair{
				Foreground: "#89b4fa", // Blue
				Background: "#313244", // Dark surface
			},
			Arrow: redline.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Header: redline.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244", // Dark surface
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: redline.Styles{
			Inserted: redline.ColorPair{
				Foreground: "#40a02b", // Green
				Background: "#d4f4d4", // Subtle green background
			},
			Deleted: redline.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4", // Subtle red background
			},
			Highlight: redline.ColorPair{
				Foreground: "#4c4f69",
				Background: "#f5e0a0", // Soft yellow
			},
			Comment: redline.ColorPair{
				Foreground: "#1e66f5", // Blue
				Background: "#e6e9ef", // Light surface
			},
			Arrow: redline.ColorPair{
				Foreground: "#9ca0b0", // Muted gray
			},
			Header: redline.ColorPair{
				Foreground: "#df8e1d", // Yellow
				Background: "#e6e9ef", // Light surface
			},
		},
	}
}
