package model

import "time"

// Meme categories. The category set is fixed: it mirrors the site's meme
// gallery tabs.
const (
	MemeCategoryGediminas = "gediminas"
	MemeCategoryUsain     = "usain"
	MemeCategoryEliud     = "eliud"
	MemeCategoryGeneral   = "general"
)

// MemeCategories lists the valid categories in display order.
var MemeCategories = []string{
	MemeCategoryGediminas,
	MemeCategoryUsain,
	MemeCategoryEliud,
	MemeCategoryGeneral,
}

// ValidMemeCategory reports whether c is one of the known categories.
func ValidMemeCategory(c string) bool {
	for _, known := range MemeCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Meme is a user-uploaded gallery image. Image upload itself is handled by
// the object-storage collaborator; the API only stores the resulting URL.
type Meme struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCount is one row of the memes-by-category breakdown used by the
// stats endpoint.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
