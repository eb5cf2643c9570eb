package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/debemdeboas/the-gallery/internal/collection"
	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/routes"
	"github.com/debemdeboas/the-gallery/internal/upload"
)

type errorResponse struct {
	Error string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

func (s *section[T, D]) mountAPI(r chi.Router) {
	r.Get("/", s.list)
	r.Post("/", s.create)
	r.Put(routes.APIItem, s.update)
	r.Delete(routes.APIItem, s.delete)
}

func (s *section[T, D]) list(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Items())
}

func (s *section[T, D]) create(w http.ResponseWriter, r *http.Request) {
	var draft D
	if err := render.DecodeJSON(r.Body, &draft); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.session.Add(r.Context(), draft)
	if errors.Is(err, collection.ErrInvalidDraft) {
		renderError(w, r, http.StatusBadRequest, config.ErrInvalidDraft)
		return
	} else if err != nil {
		handlerLogger.Error().Err(err).Str("section", s.session.Name()).Msg("Failed to add item")
		renderError(w, r, http.StatusInternalServerError, config.ErrInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (s *section[T, D]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, config.ErrItemNotFound)
		return
	}

	var draft D
	if err := render.DecodeJSON(r.Body, &draft); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	item, found, err := s.session.Update(r.Context(), id, draft)
	if !found {
		renderError(w, r, http.StatusNotFound, config.ErrItemNotFound)
		return
	} else if err != nil {
		handlerLogger.Error().Err(err).Str("section", s.session.Name()).Msg("Failed to update item")
		renderError(w, r, http.StatusInternalServerError, config.ErrInternalServerError)
		return
	}

	render.JSON(w, r, item)
}

func (s *section[T, D]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		renderError(w, r, http.StatusNotFound, config.ErrItemNotFound)
		return
	}

	removed, err := s.removeItem(r, id)
	if !removed {
		renderError(w, r, http.StatusNotFound, config.ErrItemNotFound)
		return
	} else if err != nil {
		handlerLogger.Error().Err(err).Str("section", s.session.Name()).Msg("Failed to remove item")
		renderError(w, r, http.StatusInternalServerError, config.ErrInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type slideshowResponse struct {
	Slides     []string `json:"slides"`
	Current    int      `json:"current"`
	IntervalMs int64    `json:"intervalMs"`
	Active     bool     `json:"active"`
}

func (h *Handler) serveSlideshowAPI(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, slideshowResponse{
		Slides:     h.slideshow.Slides(),
		Current:    h.slideshow.Current(),
		IntervalMs: h.slideshow.Interval().Milliseconds(),
		Active:     h.slideshow.Active(),
	})
}

type uploadResponse struct {
	Ref     string `json:"ref"`
	URL     string `json:"url"`
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Preview string `json:"preview"`
}

func (h *Handler) serveUploadAPI(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		renderError(w, r, http.StatusBadRequest, config.ErrUploadRequired)
		return
	}
	defer file.Close()

	u, err := h.uploads.Put(header.Filename, file)
	switch {
	case errors.Is(err, upload.ErrNotImage):
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, upload.ErrTooLarge):
		renderError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, upload.ErrFull):
		renderError(w, r, http.StatusInsufficientStorage, err.Error())
		return
	case err != nil:
		handlerLogger.Error().Err(err).Msg("Failed to store upload")
		renderError(w, r, http.StatusInternalServerError, config.ErrInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, uploadResponse{
		Ref:     u.Ref,
		URL:     u.URL(),
		Name:    upload.BaseName(u.FileName),
		Width:   u.Width,
		Height:  u.Height,
		Preview: u.Preview(),
	})
}
