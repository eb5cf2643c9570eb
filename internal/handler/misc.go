package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/routes"
	"github.com/debemdeboas/the-gallery/internal/sse"
	"github.com/debemdeboas/the-gallery/internal/theme"
	"github.com/debemdeboas/the-gallery/internal/util"
)

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nDisallow:"))
}

func serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	if !config.AppConfig.Theme.AllowSwitching {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	newTheme := theme.Toggle(theme.GetThemeFromRequest(r))
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    newTheme,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, sameSiteReferer(r), http.StatusSeeOther)
}

// sameSiteReferer is the path of the referring page, or the root when the
// referer is missing or points elsewhere.
func sameSiteReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return routes.RootPath
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func serveSyntaxTheme(w http.ResponseWriter, r *http.Request) {
	themeStyle := []byte(theme.GenerateSyntaxCSS(chi.URLParam(r, "theme")))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	u, ok := h.uploads.Get(chi.URLParam(r, "ref"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set(config.HCType, u.ContentType)
	w.Header().Set(config.HCacheControl, "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(u.Data)
}

var topics = map[string]bool{
	sse.TopicSlideshow: true,
	sse.TopicImages:    true,
	sse.TopicProjects:  true,
	sse.TopicPosts:     true,
}

func (h *Handler) serveEvents(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if !topics[topic] {
		http.Error(w, "Topic parameter required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	if topic == sse.TopicSlideshow {
		fmt.Fprintf(w, "data: %d\n\n", h.slideshow.Current())
	}
	flusher.Flush()

	client := sse.NewClient(topic)
	h.clients.Add(client)
	handlerLogger.Debug().Str("topic", topic).Msg("New SSE client connected")

	defer func() {
		h.clients.Delete(client)
		handlerLogger.Debug().Str("topic", topic).Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg, open := <-client.Msg:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}
