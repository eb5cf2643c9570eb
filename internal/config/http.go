package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"
	HLocation     = "Location"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
	CTypeText = "text/plain"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	CookieTheme       = "theme"
	CookieSyntaxTheme = "syntax-theme"
)
