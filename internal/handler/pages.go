package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/debemdeboas/the-gallery/internal/collection"
	"github.com/debemdeboas/the-gallery/internal/config"
	"github.com/debemdeboas/the-gallery/internal/model"
	"github.com/debemdeboas/the-gallery/internal/render"
)

func (h *Handler) renderPage(w http.ResponseWriter, page string, data any) {
	tmpl, err := template.ParseFS(h.content, config.TemplatesLocalDir+"/"+config.TemplateLayout, config.TemplatesLocalDir+"/"+page)
	if err != nil {
		handlerLogger.Error().Err(err).Str("page", page).Msg("Failed to parse template")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, config.TemplateLayout, data); err != nil {
		handlerLogger.Error().Err(err).Str("page", page).Msg("Failed to execute template")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		*model.PageData
		Slides     []string
		Current    int
		IntervalMs int64
		Images     int
		Projects   int
		Posts      int
	}{
		PageData:   model.NewPageData(r),
		Slides:     h.slideshow.Slides(),
		Current:    h.slideshow.Current(),
		IntervalMs: h.slideshow.Interval().Milliseconds(),
		Images:     len(h.images.session.Items()),
		Projects:   len(h.projects.session.Items()),
		Posts:      len(h.posts.session.Items()),
	}

	h.renderPage(w, config.TemplateIndex, data)
}

func (h *Handler) serveGallery(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if !model.IsCategory(category) {
		category = model.CategoryAll
	}

	view := h.images.session.View()
	data := struct {
		*model.PageData
		View       collection.View[model.Image, model.ImageDraft]
		Visible    []model.Image
		Categories []string
		Category   string
	}{
		PageData:   model.NewPageData(r),
		View:       view,
		Visible:    model.FilterImages(view.Items, category),
		Categories: model.Categories,
		Category:   category,
	}

	h.renderPage(w, config.TemplateGallery, data)
}

func (h *Handler) serveProjects(w http.ResponseWriter, r *http.Request) {
	data := struct {
		*model.PageData
		View collection.View[model.Project, model.ProjectDraft]
	}{
		PageData: model.NewPageData(r),
		View:     h.projects.session.View(),
	}

	h.renderPage(w, config.TemplateProjects, data)
}

type renderedPost struct {
	model.Post
	Content template.HTML
}

func (h *Handler) serveBlog(w http.ResponseWriter, r *http.Request) {
	pd := model.NewPageData(r)
	view := h.posts.session.View()

	posts := make([]renderedPost, len(view.Items))
	excerpts := make([][]byte, len(view.Items))
	for i, p := range view.Items {
		excerpts[i] = []byte(p.Excerpt)
		posts[i] = renderedPost{
			Post:    p,
			Content: template.HTML(render.RenderMarkdownCached(excerpts[i], pd.SyntaxTheme)),
		}
	}
	render.PruneRendered(excerpts)

	data := struct {
		*model.PageData
		View  collection.View[model.Post, model.PostDraft]
		Posts []renderedPost
	}{
		PageData: pd,
		View:     view,
		Posts:    posts,
	}

	h.renderPage(w, config.TemplateBlog, data)
}
