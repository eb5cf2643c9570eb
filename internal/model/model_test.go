package model

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/debemdeboas/the-gallery/internal/config"
)

func TestSeeds(t *testing.T) {
	t.Run("Images use dense ids", func(t *testing.T) {
		for i, img := range SeedImages() {
			if img.ID != ItemID(i+1) {
				t.Errorf("Expected image %d to have id %d, got %d", i, i+1, img.ID)
			}
			if !IsCategory(img.Category) || img.Category == CategoryAll {
				t.Errorf("Image %d has unexpected category %q", img.ID, img.Category)
			}
		}
	})

	t.Run("Projects", func(t *testing.T) {
		projects := SeedProjects()
		if len(projects) != 3 {
			t.Fatalf("Expected 3 projects, got %d", len(projects))
		}
		if projects[0].Name != "Babazon E-commerce" {
			t.Errorf("Expected first project 'Babazon E-commerce', got %q", projects[0].Name)
		}
	})

	t.Run("Posts", func(t *testing.T) {
		posts := SeedPosts()
		if len(posts) != 3 {
			t.Fatalf("Expected 3 posts, got %d", len(posts))
		}
		for _, p := range posts {
			if p.Time().IsZero() {
				t.Errorf("Post %d has unparsable date %q", p.ID, p.Date)
			}
		}
	})

	t.Run("Seeds are fresh copies", func(t *testing.T) {
		a := SeedProjects()
		a[0].Tech[0] = "Changed"
		if SeedProjects()[0].Tech[0] != "Next.js" {
			t.Error("Expected each call to return independent data")
		}
	})
}

func TestImageDisplayName(t *testing.T) {
	testCases := []struct {
		name     string
		image    Image
		expected string
	}{
		{name: "Name wins", image: Image{Name: "Sunset", Alt: "alt"}, expected: "Sunset"},
		{name: "Alt fallback", image: Image{Alt: "Street Portrait"}, expected: "Street Portrait"},
		{name: "Neither", image: Image{}, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.image.DisplayName(); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestDraftValid(t *testing.T) {
	testCases := []struct {
		name  string
		draft interface{ Valid() bool }
		valid bool
	}{
		{name: "Post complete", draft: PostDraft{Title: "Hello", Excerpt: "World"}, valid: true},
		{name: "Post whitespace title", draft: PostDraft{Title: "   \t", Excerpt: "World"}, valid: false},
		{name: "Post empty excerpt", draft: PostDraft{Title: "Hello"}, valid: false},
		{name: "Image with upload", draft: ImageDraft{Name: "photo", Src: "/uploads/abc"}, valid: true},
		{name: "Image without upload", draft: ImageDraft{Name: "photo"}, valid: false},
		{name: "Image blank name", draft: ImageDraft{Name: " ", Src: "/uploads/abc"}, valid: false},
		{name: "Project with screenshot", draft: ProjectDraft{Name: "App", Screenshot: "/uploads/x"}, valid: true},
		{name: "Project without screenshot", draft: ProjectDraft{Name: "App"}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.draft.Valid(); got != tc.valid {
				t.Errorf("Expected Valid()=%v, got %v", tc.valid, got)
			}
		})
	}
}

func TestFilterImages(t *testing.T) {
	images := SeedImages()

	t.Run("All", func(t *testing.T) {
		if got := FilterImages(images, CategoryAll); len(got) != len(images) {
			t.Errorf("Expected %d images, got %d", len(images), len(got))
		}
		if got := FilterImages(images, ""); len(got) != len(images) {
			t.Errorf("Expected empty category to keep all, got %d", len(got))
		}
	})

	t.Run("Single category keeps order", func(t *testing.T) {
		got := FilterImages(images, CategoryTech)
		if len(got) != 2 {
			t.Fatalf("Expected 2 tech images, got %d", len(got))
		}
		if got[0].ID != 1 || got[1].ID != 4 {
			t.Errorf("Expected ids [1 4], got [%d %d]", got[0].ID, got[1].ID)
		}
	})

	t.Run("Unknown category", func(t *testing.T) {
		if got := FilterImages(images, "landscapes"); len(got) != 0 {
			t.Errorf("Expected no images, got %d", len(got))
		}
	})
}

func TestPostTime(t *testing.T) {
	p := Post{Date: "2026-01-08"}
	if !p.Time().Equal(time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected time %v", p.Time())
	}
	if !(Post{Date: "yesterday"}).Time().IsZero() {
		t.Error("Expected zero time for malformed date")
	}
}

func TestPageData(t *testing.T) {
	req := httptest.NewRequest("GET", "/gallery", nil)
	pd := NewPageData(req)

	if pd.SiteName != config.AppConfig.Site.Name {
		t.Errorf("Expected site name %q, got %q", config.AppConfig.Site.Name, pd.SiteName)
	}
	if pd.Theme != config.DarkTheme {
		t.Errorf("Expected default theme %q, got %q", config.DarkTheme, pd.Theme)
	}
	if pd.SyntaxCSS == "" {
		t.Error("Expected syntax CSS to be generated")
	}
	if !pd.IsActive("/gallery") {
		t.Error("Expected /gallery to be active")
	}
	if pd.IsActive("/") {
		t.Error("Expected landing page to be inactive on /gallery")
	}
}
