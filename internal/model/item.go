// Package model defines the portfolio records (images, projects, posts), their
// draft buffers and the seed collections.
package model

import (
	"strings"
	"time"
)

// ItemID identifies an item within its collection. Seeds use 1..N, items
// created at runtime use the creation time in milliseconds.
type ItemID int64

const (
	DefaultDescription = "Click edit to add description"
	DefaultCategory    = CategoryTech
	DefaultImageWidth  = 800
	DefaultImageHeight = 600

	DateLayout = "2006-01-02"
)

type Image struct {
	ID          ItemID `json:"id"`
	Src         string `json:"src"`
	Name        string `json:"name,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func (i Image) ItemID() ItemID { return i.ID }

// DisplayName is the name, or the alt text of older seed records.
func (i Image) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Alt
}

type Project struct {
	ID          ItemID   `json:"id"`
	Name        string   `json:"name"`
	Screenshot  string   `json:"screenshot"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
}

func (p Project) ItemID() ItemID { return p.ID }

type Post struct {
	ID      ItemID `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Date    string `json:"date"`
}

func (p Post) ItemID() ItemID { return p.ID }

// Time parses Date, returning the zero time when it is malformed.
func (p Post) Time() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
