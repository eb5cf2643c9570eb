package config

import "slices"

// Page themes, stored in the theme cookie and used as the body class.
const (
	LightTheme = "light-theme"
	DarkTheme  = "dark-theme"

	DefaultTheme = DarkTheme
)

// Icons of the toggle button. Each shows the theme it switches to.
const (
	LightThemeIcon = `<i class="fas fa-sun"></i>`
	DarkThemeIcon  = `<i class="fas fa-moon"></i>`
)

// Chroma styles for code in blog excerpts when no syntax cookie is set.
const (
	DefaultDarkSyntaxTheme  = "gruvbox"
	DefaultLightSyntaxTheme = "catppuccin-latte"
)

// Themes lists the page themes in toggle order.
var Themes = []string{DarkTheme, LightTheme}

func IsTheme(name string) bool {
	return slices.Contains(Themes, name)
}
