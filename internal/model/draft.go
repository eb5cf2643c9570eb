package model

// ImageDraft buffers an image being added or edited. Editing only commits
// Name and Description; the other fields describe a fresh upload.
type ImageDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Src         string `json:"src,omitempty"`
	Category    string `json:"category,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

func (d ImageDraft) Valid() bool {
	return !blank(d.Name) && !blank(d.Src)
}

type ProjectDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Screenshot  string   `json:"screenshot,omitempty"`
	Tech        []string `json:"tech,omitempty"`
}

func (d ProjectDraft) Valid() bool {
	return !blank(d.Name) && !blank(d.Screenshot)
}

type PostDraft struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

func (d PostDraft) Valid() bool {
	return !blank(d.Title) && !blank(d.Excerpt)
}
