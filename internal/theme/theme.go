// Package theme resolves the dark/light page theme and generates the syntax
// highlighting stylesheet used by rendered blog excerpts.
package theme

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/the-gallery/internal/cache"
	"github.com/debemdeboas/the-gallery/internal/config"
)

var syntaxCache = cache.NewCache[string, template.CSS]()

func GetThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil {
		if config.IsTheme(cookie.Value) {
			return cookie.Value
		}
	}
	return config.AppConfig.Theme.Default
}

// Toggle returns the theme after current in toggle order. Unknown themes
// start over at the first one.
func Toggle(current string) string {
	i := slices.Index(config.Themes, current)
	if i < 0 {
		return config.Themes[0]
	}
	return config.Themes[(i+1)%len(config.Themes)]
}

func GetDefaultSyntaxTheme(theme string) string {
	if theme == config.LightTheme {
		return config.AppConfig.Theme.SyntaxHighlighting.DefaultLight
	}
	return config.AppConfig.Theme.SyntaxHighlighting.DefaultDark
}

func GetSyntaxThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return GetDefaultSyntaxTheme(GetThemeFromRequest(r))
}

func GetSyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

func GetFormatter() *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WrapLongLines(true),
	)
}

func GenerateSyntaxCSS(theme string) template.CSS {
	if css, ok := syntaxCache.Get(theme); ok {
		return css
	}

	var buf strings.Builder
	formatter := GetFormatter()
	style := styles.Get(theme)

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Calculate the color of highlighted text given the background color
		// for when the Chroma theme doesn't supply a default
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	formatter.WriteCSS(&buf, style)
	css := template.CSS(buf.String())
	syntaxCache.Set(theme, css)
	return css
}

func GetThemeIcon(theme string) string {
	if theme == config.LightTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}
