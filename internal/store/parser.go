package store

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"mediagrid/internal/models"

	"github.com/google/uuid"
)

// Payload is the normalized result of one load cycle.
type Payload struct {
	Items    []models.ContentItem
	Ads      []models.AdUnit
	Branding models.BrandingProfile
}

// rawItem mirrors the source field aliases: sources send either date or
// published_at, and either views or popularity.
type rawItem struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        json.RawMessage `json:"date"`
	PublishedAt json.RawMessage `json:"published_at"`
	Views       int             `json:"views"`
	Popularity  int             `json:"popularity"`
	Thumbnail   string          `json:"thumbnail"`
	Link        string          `json:"link"`
}

type rawAd struct {
	Slot     string `json:"slot"`
	ImageURL string `json:"image_url"`
	ClickURL string `json:"click_url"`
	AltText  string `json:"alt_text"`
}

type rawWrapper struct {
	Items    []rawItem               `json:"items"`
	Ads      []rawAd                 `json:"ads"`
	Branding *models.BrandingProfile `json:"branding"`
}

func (w rawWrapper) empty() bool {
	return len(w.Items) == 0 && len(w.Ads) == 0 && (w.Branding == nil || w.Branding.IsZero())
}

// ParsePayload decodes one source document. Three shapes are supported,
// detected from the leading JSON token rather than guessed by trial
// decoding:
//
//   - an array of wrapper objects: the first wrapper carrying any data wins,
//     the rest are ignored
//   - a single wrapper object with items/ads/branding fields
//   - a bare array of items, with no ads and no branding
//
// Any other top-level value is a ParseError.
func ParsePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{}, &ParseError{Reason: "empty document"}
	}

	switch trimmed[0] {
	case '[':
		var wrappers []rawWrapper
		if err := json.Unmarshal(trimmed, &wrappers); err == nil {
			for _, w := range wrappers {
				if !w.empty() {
					return normalize(w), nil
				}
			}
		}
		// No wrapper carried data: the array is the items collection itself.
		var items []rawItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Payload{}, &ParseError{Reason: "top-level array is neither wrappers nor items", Err: err}
		}
		return normalize(rawWrapper{Items: items}), nil

	case '{':
		var w rawWrapper
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return Payload{}, &ParseError{Reason: "malformed wrapper object", Err: err}
		}
		return normalize(w), nil

	default:
		return Payload{}, &ParseError{Reason: "top-level value is not an object or array"}
	}
}

func normalize(w rawWrapper) Payload {
	p := Payload{
		Items: make([]models.ContentItem, 0, len(w.Items)),
		Ads:   make([]models.AdUnit, 0, len(w.Ads)),
	}

	seen := make(map[string]bool, len(w.Items))
	for _, r := range w.Items {
		item := normalizeItem(r)
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		p.Items = append(p.Items, item)
	}

	for _, a := range w.Ads {
		slot := strings.TrimSpace(a.Slot)
		if slot == "" {
			continue
		}
		p.Ads = append(p.Ads, models.AdUnit{
			Slot:     slot,
			ImageURL: strings.TrimSpace(a.ImageURL),
			ClickURL: strings.TrimSpace(a.ClickURL),
			AltText:  strings.TrimSpace(a.AltText),
		})
	}

	if w.Branding != nil {
		p.Branding = *w.Branding
	}

	return p
}

func normalizeItem(r rawItem) models.ContentItem {
	id := scalarString(r.ID)
	if id == "" {
		id = uuid.NewString()
	}

	published := parseTimestamp(r.PublishedAt)
	if published.IsZero() {
		published = parseTimestamp(r.Date)
	}

	popularity := r.Popularity
	if popularity == 0 {
		popularity = r.Views
	}
	if popularity < 0 {
		popularity = 0
	}

	return models.ContentItem{
		ID:           id,
		Title:        strings.TrimSpace(r.Title),
		Description:  strings.TrimSpace(r.Description),
		Category:     strings.TrimSpace(r.Category),
		PublishedAt:  published,
		Popularity:   popularity,
		ThumbnailURL: strings.TrimSpace(r.Thumbnail),
		TargetURL:    strings.TrimSpace(r.Link),
	}
}

// scalarString renders a raw JSON scalar (string or number) as a string ID.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseTimestamp accepts RFC 3339, bare dates, and unix seconds.
func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
		return time.Time{}
	}

	var secs int64
	if err := json.Unmarshal(raw, &secs); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC()
	}

	return time.Time{}
}

// Categories returns the distinct category values of items, sorted
// lexicographically. Empty categories are skipped.
func Categories(items []models.ContentItem) []string {
	set := make(map[string]bool)
	for _, it := range items {
		if it.Category != "" {
			set[it.Category] = true
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
