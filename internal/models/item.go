package models

import "time"

// ContentItem is one displayable unit in the grid. Items are created when a
// payload is parsed and never mutated afterwards; a refresh replaces the
// whole collection.
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	PublishedAt  time.Time `json:"published_at"`
	Popularity   int       `json:"popularity"`
	ThumbnailURL string    `json:"thumbnail"`
	TargetURL    string    `json:"link"`
}
