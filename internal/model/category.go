package model

const (
	CategoryAll       = "all"
	CategoryTech      = "tech"
	CategoryAbstract  = "abstract"
	CategoryPortraits = "portraits"
)

// Categories lists the gallery filters in display order.
var Categories = []string{CategoryAll, CategoryTech, CategoryAbstract, CategoryPortraits}

func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FilterImages keeps the images of category. "all" and "" keep everything.
func FilterImages(images []Image, category string) []Image {
	if category == "" || category == CategoryAll {
		return images
	}
	filtered := make([]Image, 0, len(images))
	for _, img := range images {
		if img.Category == category {
			filtered = append(filtered, img)
		}
	}
	return filtered
}
