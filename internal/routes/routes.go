// Package routes defines HTTP route constants for the application.
package routes

// Pages
const (
	RootPath     = "/"
	GalleryPath  = "/gallery"
	ProjectsPath = "/projects"
	BlogPath     = "/blog"
)

// Form actions, relative to a section page
const (
	Add           = "/add"
	AddShow       = "/add/show"
	AddCancel     = "/add/cancel"
	Remove        = "/{id}/remove"
	Edit          = "/{id}/edit"
	EditSave      = "/edit/save"
	EditCancel    = "/edit/cancel"
	Upload        = "/upload"
	LightboxOpen  = "/{id}/open"
	LightboxClose = "/lightbox/close"
	LightboxNext  = "/lightbox/next"
	LightboxPrev  = "/lightbox/prev"
)

// Static and assets
const (
	RobotsPath     = "/robots.txt"
	ThemeToggle    = "/theme/toggle"
	SyntaxThemeGet = "/syntax-theme/{theme}"
	UploadsPath    = "/uploads/{ref}"
)

// SSE
const SSEPath = "/sse"

// API
const (
	APIPrefix    = "/api"
	APIItem      = "/{id}"
	APISlideshow = "/slideshow"
	APIUploads   = "/uploads"
)
