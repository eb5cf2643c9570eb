// Package handler serves the portfolio pages, their form actions and the JSON
// API over the collection sessions.
package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/the-gallery/internal/cache"
	"github.com/debemdeboas/the-gallery/internal/collection"
	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/model"
	"github.com/debemdeboas/the-gallery/internal/routes"
	"github.com/debemdeboas/the-gallery/internal/slideshow"
	"github.com/debemdeboas/the-gallery/internal/sse"
	"github.com/debemdeboas/the-gallery/internal/upload"
	"github.com/debemdeboas/the-gallery/internal/util"
)

var handlerLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	handlerLogger = l
}

type (
	ImageSession   = collection.Session[model.Image, model.ImageDraft]
	ProjectSession = collection.Session[model.Project, model.ProjectDraft]
	PostSession    = collection.Session[model.Post, model.PostDraft]
)

type Options struct {
	// Content holds the static and templates directories.
	Content fs.FS

	Images    *ImageSession
	Projects  *ProjectSession
	Posts     *PostSession
	Uploads   *upload.Store
	Slideshow *slideshow.Slideshow
	Clients   *sse.SSEClients

	AllowedOrigins []string
}

type Handler struct {
	content fs.FS
	static  fs.FS

	images    *section[model.Image, model.ImageDraft]
	projects  *section[model.Project, model.ProjectDraft]
	posts     *section[model.Post, model.PostDraft]
	uploads   *upload.Store
	slideshow *slideshow.Slideshow
	clients   *sse.SSEClients

	staticHashes   *cache.Cache[string, string]
	allowedOrigins []string
}

func New(opts Options) (*Handler, error) {
	static, err := fs.Sub(opts.Content, config.StaticLocalDir)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		content:        opts.Content,
		static:         static,
		uploads:        opts.Uploads,
		slideshow:      opts.Slideshow,
		clients:        opts.Clients,
		staticHashes:   cache.NewCache[string, string](),
		allowedOrigins: opts.AllowedOrigins,
	}
	h.images = newImageSection(opts.Images, opts.Uploads)
	h.projects = newProjectSection(opts.Projects, opts.Uploads)
	h.posts = newPostSection(opts.Posts)
	h.images.release = h.releaseUpload
	h.projects.release = h.releaseUpload

	// Calculate the hash of static content
	err = fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			data, err := fs.ReadFile(static, path)
			if err != nil {
				return err
			}
			h.staticHashes.Set(config.StaticUrlPath+path, util.ContentHash(data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(h.cacheIt)

	r.Get(routes.RobotsPath, serveRobots)

	r.Group(func(r chi.Router) {
		r.Use(secureHeaders)

		r.Get(routes.RootPath, h.serveIndex)
		r.Handle(config.StaticUrlPath+"*", http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(h.static))))
		r.Get(routes.UploadsPath, h.serveUpload)
		r.Get(routes.SSEPath, h.serveEvents)
		r.Post(routes.ThemeToggle, serveThemeToggle)
		r.Get(routes.SyntaxThemeGet, serveSyntaxTheme)

		r.Route(routes.GalleryPath, func(r chi.Router) {
			r.Get("/", h.serveGallery)
			h.images.mountForms(r)
			h.images.mountLightbox(r)
			h.images.mountUpload(r)
		})
		r.Route(routes.ProjectsPath, func(r chi.Router) {
			r.Get("/", h.serveProjects)
			h.projects.mountForms(r)
			h.projects.mountLightbox(r)
			h.projects.mountUpload(r)
		})
		r.Route(routes.BlogPath, func(r chi.Router) {
			r.Get("/", h.serveBlog)
			h.posts.mountForms(r)
		})
	})

	r.Route(routes.APIPrefix, func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         300,
		}))

		r.Route(routes.GalleryPath, h.images.mountAPI)
		r.Route(routes.ProjectsPath, h.projects.mountAPI)
		r.Route(routes.BlogPath, h.posts.mountAPI)
		r.Get(routes.APISlideshow, h.serveSlideshowAPI)
		r.Post(routes.APIUploads, h.serveUploadAPI)
	})

	return r
}

// releaseUpload frees the upload behind src unless an item or an add draft
// in the gallery or projects still shows it.
func (h *Handler) releaseUpload(src string) {
	ref, ok := upload.RefFromURL(src)
	if !ok {
		return
	}
	if shows(h.images, src) || shows(h.projects, src) {
		return
	}
	h.uploads.Delete(ref)
}

func shows[T collection.Item, D collection.Draft](s *section[T, D], src string) bool {
	for _, item := range s.session.Items() {
		if s.itemSource(item) == src {
			return true
		}
	}
	_, draft := s.session.AddForm()
	return s.draftSource(draft) == src
}

// Notifier returns a change notifier that tells subscribers of topic to reload.
func (h *Handler) Notifier(topic string) func(key string) {
	return func(key string) {
		handlerLogger.Debug().Str("key", key).Str("topic", topic).Msg("Collection changed")
		h.clients.Broadcast(topic, "reload")
	}
}
