package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/debemdeboas/the-gallery/internal/collection"
	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/model"
	"github.com/debemdeboas/the-gallery/internal/routes"
	"github.com/debemdeboas/the-gallery/internal/upload"
)

// section serves the form actions and API of one collection.
type section[T collection.Item, D collection.Draft] struct {
	session *collection.Session[T, D]
	path    string

	// fromForm overlays the submitted form fields on base.
	fromForm func(base D, r *http.Request) D
	// withUpload fills base from an uploaded image; nil when the section
	// has no uploads.
	withUpload func(base D, u *upload.Upload) D
	uploads    *upload.Store

	// itemSource and draftSource name the image an item or draft shows.
	itemSource  func(item T) string
	draftSource func(draft D) string
	// release frees an upload nothing shows anymore.
	release func(src string)
}

func newImageSection(s *ImageSession, uploads *upload.Store) *section[model.Image, model.ImageDraft] {
	return &section[model.Image, model.ImageDraft]{
		session: s,
		path:    routes.GalleryPath,
		uploads: uploads,
		fromForm: func(d model.ImageDraft, r *http.Request) model.ImageDraft {
			d.Name = r.FormValue("name")
			d.Description = r.FormValue("description")
			if c := r.FormValue("category"); c != "" {
				d.Category = c
			}
			if src := r.FormValue("src"); src != "" {
				d.Src = src
			}
			return d
		},
		withUpload: func(d model.ImageDraft, u *upload.Upload) model.ImageDraft {
			d.Src = u.URL()
			d.Width, d.Height = u.Width, u.Height
			if d.Name == "" {
				d.Name = upload.BaseName(u.FileName)
			}
			return d
		},
		itemSource:  func(img model.Image) string { return img.Src },
		draftSource: func(d model.ImageDraft) string { return d.Src },
	}
}

func newProjectSection(s *ProjectSession, uploads *upload.Store) *section[model.Project, model.ProjectDraft] {
	return &section[model.Project, model.ProjectDraft]{
		session: s,
		path:    routes.ProjectsPath,
		uploads: uploads,
		fromForm: func(d model.ProjectDraft, r *http.Request) model.ProjectDraft {
			d.Name = r.FormValue("name")
			d.Description = r.FormValue("description")
			if src := r.FormValue("screenshot"); src != "" {
				d.Screenshot = src
			}
			if tech := r.FormValue("tech"); tech != "" {
				d.Tech = splitList(tech)
			}
			return d
		},
		withUpload: func(d model.ProjectDraft, u *upload.Upload) model.ProjectDraft {
			d.Screenshot = u.URL()
			if d.Name == "" {
				d.Name = upload.BaseName(u.FileName)
			}
			return d
		},
		itemSource:  func(p model.Project) string { return p.Screenshot },
		draftSource: func(d model.ProjectDraft) string { return d.Screenshot },
	}
}

func newPostSection(s *PostSession) *section[model.Post, model.PostDraft] {
	return &section[model.Post, model.PostDraft]{
		session: s,
		path:    routes.BlogPath,
		fromForm: func(d model.PostDraft, r *http.Request) model.PostDraft {
			d.Title = r.FormValue("title")
			d.Excerpt = r.FormValue("excerpt")
			return d
		},
	}
}

func (s *section[T, D]) mountForms(r chi.Router) {
	r.Post(routes.Add, s.add)
	r.Post(routes.AddShow, s.showAddForm)
	r.Post(routes.AddCancel, s.hideAddForm)
	r.Post(routes.Remove, s.remove)
	r.Post(routes.Edit, s.startEdit)
	r.Post(routes.EditSave, s.saveEdit)
	r.Post(routes.EditCancel, s.cancelEdit)
}

func (s *section[T, D]) mountLightbox(r chi.Router) {
	r.Post(routes.LightboxOpen, s.openLightbox)
	r.Post(routes.LightboxClose, s.closeLightbox)
	r.Post(routes.LightboxNext, s.nextInLightbox)
	r.Post(routes.LightboxPrev, s.previousInLightbox)
}

func (s *section[T, D]) mountUpload(r chi.Router) {
	r.Post(routes.Upload, s.upload)
}

// back answers a form action with a redirect to the section page, keeping the
// gallery filter.
func (s *section[T, D]) back(w http.ResponseWriter, r *http.Request) {
	target := s.path
	if category := r.FormValue("category_filter"); category != "" && model.IsCategory(category) {
		target += "?" + url.Values{"category": {category}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *section[T, D]) fail(w http.ResponseWriter, err error) {
	handlerLogger.Error().Err(err).Str("section", s.session.Name()).Msg("Failed to persist change")
	http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
}

func (s *section[T, D]) add(w http.ResponseWriter, r *http.Request) {
	_, base := s.session.AddForm()
	draft := s.fromForm(base, r)

	if _, err := s.session.Add(r.Context(), draft); err != nil {
		if !errors.Is(err, collection.ErrInvalidDraft) {
			s.fail(w, err)
			return
		}
		// keep what was typed
		s.session.SetAddDraft(draft)
		s.session.ShowAddForm()
	}
	s.back(w, r)
}

func (s *section[T, D]) showAddForm(w http.ResponseWriter, r *http.Request) {
	s.session.ShowAddForm()
	s.back(w, r)
}

func (s *section[T, D]) hideAddForm(w http.ResponseWriter, r *http.Request) {
	_, draft := s.session.AddForm()
	s.session.HideAddForm()
	s.releaseDraft(draft)
	s.back(w, r)
}

func (s *section[T, D]) remove(w http.ResponseWriter, r *http.Request) {
	if id, ok := itemID(r); ok {
		if _, err := s.removeItem(r, id); err != nil {
			s.fail(w, err)
			return
		}
	}
	s.back(w, r)
}

// removeItem removes id and frees its upload once the removal is stored.
func (s *section[T, D]) removeItem(r *http.Request, id model.ItemID) (bool, error) {
	item, found := s.session.Get(id)
	removed, err := s.session.Remove(r.Context(), id)
	if removed && err == nil && found && s.itemSource != nil {
		s.release(s.itemSource(item))
	}
	return removed, err
}

func (s *section[T, D]) releaseDraft(draft D) {
	if s.draftSource != nil {
		s.release(s.draftSource(draft))
	}
}

func (s *section[T, D]) startEdit(w http.ResponseWriter, r *http.Request) {
	if id, ok := itemID(r); ok {
		s.session.StartEdit(id)
	}
	s.back(w, r)
}

func (s *section[T, D]) saveEdit(w http.ResponseWriter, r *http.Request) {
	if _, draft, editing := s.session.Editing(); editing {
		s.session.SetDraft(s.fromForm(draft, r))
	}
	if _, err := s.session.SaveEdit(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.back(w, r)
}

func (s *section[T, D]) cancelEdit(w http.ResponseWriter, r *http.Request) {
	s.session.CancelEdit()
	s.back(w, r)
}

func (s *section[T, D]) upload(w http.ResponseWriter, r *http.Request) {
	u, err := s.receiveUpload(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	_, draft := s.session.AddForm()
	s.session.SetAddDraft(s.withUpload(draft, u))
	s.session.ShowAddForm()
	// the upload it replaced
	s.releaseDraft(draft)
	s.back(w, r)
}

func (s *section[T, D]) receiveUpload(r *http.Request) (*upload.Upload, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errUploadMissing
	}
	defer file.Close()
	return s.uploads.Put(header.Filename, file)
}

func (s *section[T, D]) openLightbox(w http.ResponseWriter, r *http.Request) {
	if id, ok := itemID(r); ok {
		s.session.OpenLightbox(id)
	}
	s.back(w, r)
}

func (s *section[T, D]) closeLightbox(w http.ResponseWriter, r *http.Request) {
	s.session.CloseLightbox()
	s.back(w, r)
}

func (s *section[T, D]) nextInLightbox(w http.ResponseWriter, r *http.Request) {
	s.session.NextInLightbox()
	s.back(w, r)
}

func (s *section[T, D]) previousInLightbox(w http.ResponseWriter, r *http.Request) {
	s.session.PreviousInLightbox()
	s.back(w, r)
}

var errUploadMissing = errors.New(config.ErrUploadRequired)

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUploadMissing), errors.Is(err, upload.ErrNotImage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, upload.ErrTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, upload.ErrFull):
		http.Error(w, err.Error(), http.StatusInsufficientStorage)
	default:
		handlerLogger.Error().Err(err).Msg("Failed to store upload")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
	}
}

func itemID(r *http.Request) (model.ItemID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return model.ItemID(id), true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
