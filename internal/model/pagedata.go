package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/theme"
)

type PageData struct {
	SiteName        string
	SiteDescription string
	Author          string

	PageURL string

	Theme          string
	AllowSwitching bool

	SyntaxCSS   template.CSS
	SyntaxTheme string

	Social config.SocialConfig
}

func NewPageData(r *http.Request) *PageData {
	syntaxtheme := theme.GetSyntaxThemeFromRequest(r)
	return &PageData{
		SiteName:        config.AppConfig.Site.Name,
		SiteDescription: config.AppConfig.Site.Description,
		Author:          config.AppConfig.Site.Author,
		PageURL:         r.URL.Path,
		Theme:           theme.GetThemeFromRequest(r),
		AllowSwitching:  config.AppConfig.Theme.AllowSwitching,
		SyntaxTheme:     syntaxtheme,
		SyntaxCSS:       theme.GenerateSyntaxCSS(syntaxtheme),
		Social:          config.AppConfig.Social,
	}
}

// IsActive reports whether the page belongs to the navigation section at path.
func (pd *PageData) IsActive(path string) bool {
	if path == "/" {
		return pd.PageURL == "/"
	}
	return strings.HasPrefix(pd.PageURL, path)
}
