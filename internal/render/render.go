// Package render makes the pure "what to display" decisions: pagination
// windows, ad interleaving, and the markup fragments for each placement.
// Nothing here touches the network or the HTTP layer, so every decision is
// testable in isolation.
package render

import "mediagrid/internal/models"

// DefaultAdFrequency is the cadence at which inline ads interrupt the grid:
// one creative after every fifth item.
const DefaultAdFrequency = 5

// Placement is one cell of the rendered grid: either a content item with its
// global ordinal, or an inline ad position. An ad position with a nil Ad is a
// placeholder the presentation layer fills with fallback markup.
type Placement struct {
	Item    *models.ContentItem `json:"item,omitempty"`
	Ad      *models.AdUnit      `json:"ad,omitempty"`
	Ordinal int                 `json:"ordinal,omitempty"` // 1-based global item position, items only
}

// IsAd reports whether the placement is an ad position (creative or
// placeholder).
func (p Placement) IsAd() bool {
	return p.Item == nil
}

// Paginate returns the visible window [0, (page+1)*pageSize). The window is
// a full re-render from the top, not a delta.
func Paginate(items []models.ContentItem, page, pageSize int) []models.ContentItem {
	if page < 0 || pageSize <= 0 {
		return nil
	}
	end := (page + 1) * pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[:end]
}

// PageTail returns only the newly revealed slice [page*pageSize,
// (page+1)*pageSize), the part a load-more action appends to what is already
// on screen.
func PageTail(items []models.ContentItem, page, pageSize int) []models.ContentItem {
	if page < 0 || pageSize <= 0 {
		return nil
	}
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasMore reports whether items remain beyond the current window.
func HasMore(filteredCount, page, pageSize int) bool {
	return (page+1)*pageSize < filteredCount
}

// Interleave walks the visible items assigning each a 1-based ordinal
// continuing from startOrdinal, and inserts an inline ad position after every
// item whose ordinal is an exact multiple of adFrequency. Ordinals are global
// across all pages shown so far, never reset per page, so cadence stays even
// as load-more appends. A non-positive adFrequency disables interleaving.
func Interleave(visible []models.ContentItem, startOrdinal, adFrequency int, inline *models.AdUnit) []Placement {
	out := make([]Placement, 0, len(visible)+len(visible)/DefaultAdFrequency+1)
	for i := range visible {
		ordinal := startOrdinal + i
		out = append(out, Placement{Item: &visible[i], Ordinal: ordinal})
		if adFrequency > 0 && ordinal%adFrequency == 0 {
			out = append(out, Placement{Ad: inline})
		}
	}
	return out
}
