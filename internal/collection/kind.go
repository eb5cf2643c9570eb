package collection

import (
	"strings"
	"time"

	"github.com/debemdeboas/the-gallery/internal/model"
)

// Item is a record with a stable id.
type Item interface {
	ItemID() model.ItemID
}

// Draft buffers the form fields of an item being added or edited.
type Draft interface {
	Valid() bool
}

// Kind describes one collection: where it lives, what it starts with and how
// drafts turn into items.
type Kind[T Item, D Draft] struct {
	// Name is the collection's URL section, e.g. "gallery".
	Name string
	Key  string
	Seed func() []T

	// New builds the item added from draft.
	New func(id model.ItemID, draft D, now time.Time) T
	// DraftOf seeds the edit draft from item.
	DraftOf func(item T) D
	// Apply commits the editable fields of draft to item.
	Apply func(item T, draft D) T
}

const (
	SectionGallery  = "gallery"
	SectionProjects = "projects"
	SectionBlog     = "blog"
)

func Images(key string) Kind[model.Image, model.ImageDraft] {
	return Kind[model.Image, model.ImageDraft]{
		Name: SectionGallery,
		Key:  key,
		Seed: model.SeedImages,
		New: func(id model.ItemID, d model.ImageDraft, _ time.Time) model.Image {
			img := model.Image{
				ID:          id,
				Src:         d.Src,
				Name:        d.Name,
				Description: orDefault(d.Description, model.DefaultDescription),
				Category:    d.Category,
				Width:       d.Width,
				Height:      d.Height,
			}
			if !model.IsCategory(img.Category) || img.Category == model.CategoryAll {
				img.Category = model.DefaultCategory
			}
			if img.Width <= 0 || img.Height <= 0 {
				img.Width, img.Height = model.DefaultImageWidth, model.DefaultImageHeight
			}
			return img
		},
		DraftOf: func(img model.Image) model.ImageDraft {
			return model.ImageDraft{
				Name:        img.DisplayName(),
				Description: img.Description,
				Src:         img.Src,
				Category:    img.Category,
				Width:       img.Width,
				Height:      img.Height,
			}
		},
		Apply: func(img model.Image, d model.ImageDraft) model.Image {
			img.Name = d.Name
			img.Description = d.Description
			return img
		},
	}
}

func Projects(key string) Kind[model.Project, model.ProjectDraft] {
	return Kind[model.Project, model.ProjectDraft]{
		Name: SectionProjects,
		Key:  key,
		Seed: model.SeedProjects,
		New: func(id model.ItemID, d model.ProjectDraft, _ time.Time) model.Project {
			tech := d.Tech
			if len(tech) == 0 {
				tech = []string{"Custom"}
			}
			return model.Project{
				ID:          id,
				Name:        d.Name,
				Screenshot:  d.Screenshot,
				Description: orDefault(d.Description, model.DefaultDescription),
				Tech:        tech,
			}
		},
		DraftOf: func(p model.Project) model.ProjectDraft {
			return model.ProjectDraft{Name: p.Name, Description: p.Description, Screenshot: p.Screenshot, Tech: p.Tech}
		},
		Apply: func(p model.Project, d model.ProjectDraft) model.Project {
			p.Name = d.Name
			p.Description = d.Description
			return p
		},
	}
}

func Posts(key string) Kind[model.Post, model.PostDraft] {
	return Kind[model.Post, model.PostDraft]{
		Name: SectionBlog,
		Key:  key,
		Seed: model.SeedPosts,
		New: func(id model.ItemID, d model.PostDraft, now time.Time) model.Post {
			return model.Post{
				ID:      id,
				Title:   d.Title,
				Excerpt: d.Excerpt,
				Date:    now.UTC().Format(model.DateLayout),
			}
		},
		DraftOf: func(p model.Post) model.PostDraft {
			return model.PostDraft{Title: p.Title, Excerpt: p.Excerpt}
		},
		Apply: func(p model.Post, d model.PostDraft) model.Post {
			p.Title = d.Title
			p.Excerpt = d.Excerpt
			return p
		},
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
