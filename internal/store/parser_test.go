package store

import (
	"errors"
	"testing"
	"time"
)

func TestParsePayloadWrapperArray(t *testing.T) {
	// The first wrapper carrying data wins; empty wrappers and everything
	// after the winner are ignored.
	doc := `[
		{"items": [], "ads": [], "branding": {}},
		{"items": [{"id": "a1", "title": "First", "category": "tech"}],
		 "ads": [{"slot": "banner_top", "image_url": "http://x/1.png"}],
		 "branding": {"company_name": "Acme"}},
		{"items": [{"id": "zz", "title": "Ignored"}]}
	]`

	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	if len(p.Items) != 1 || p.Items[0].ID != "a1" {
		t.Errorf("expected single item a1, got %+v", p.Items)
	}
	if len(p.Ads) != 1 || p.Ads[0].Slot != "banner_top" {
		t.Errorf("expected banner_top ad, got %+v", p.Ads)
	}
	if p.Branding.CompanyName != "Acme" {
		t.Errorf("expected Acme branding, got %+v", p.Branding)
	}
}

func TestParsePayloadSingleObject(t *testing.T) {
	doc := `{"items": [{"id": 7, "title": "Seven"}], "ads": [], "branding": {"tagline": "hi"}}`

	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	if len(p.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(p.Items))
	}
	if p.Items[0].ID != "7" {
		t.Errorf("numeric id should normalize to string, got %q", p.Items[0].ID)
	}
	if p.Branding.Tagline != "hi" {
		t.Errorf("expected tagline, got %+v", p.Branding)
	}
}

func TestParsePayloadBareItemArray(t *testing.T) {
	doc := `[{"id": "x", "title": "One"}, {"id": "y", "title": "Two"}]`

	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	if len(p.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(p.Items))
	}
	if len(p.Ads) != 0 || !p.Branding.IsZero() {
		t.Errorf("bare array should produce empty ads and branding")
	}
}

func TestParsePayloadMalformed(t *testing.T) {
	for _, doc := range []string{`42`, `"text"`, `true`, ``, `{"items": [}`} {
		_, err := ParsePayload([]byte(doc))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("doc %q: expected ParseError, got %v", doc, err)
		}
	}
}

func TestParsePayloadFieldAliases(t *testing.T) {
	doc := `{"items": [
		{"id": "a", "title": "A", "date": "2026-08-10", "views": 12},
		{"id": "b", "title": "B", "published_at": "2026-08-11T08:00:00Z", "popularity": 30}
	]}`

	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}

	a, b := p.Items[0], p.Items[1]
	if a.PublishedAt != time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("date alias not parsed: %v", a.PublishedAt)
	}
	if a.Popularity != 12 {
		t.Errorf("views alias not mapped: %d", a.Popularity)
	}
	if b.PublishedAt.IsZero() || b.Popularity != 30 {
		t.Errorf("published_at/popularity not parsed: %+v", b)
	}
}

func TestParsePayloadDuplicateAndMissingIDs(t *testing.T) {
	doc := `{"items": [
		{"id": "dup", "title": "Kept"},
		{"id": "dup", "title": "Dropped"},
		{"title": "No ID"}
	]}`

	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	if len(p.Items) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(p.Items))
	}
	if p.Items[0].Title != "Kept" {
		t.Errorf("first occurrence should win, got %q", p.Items[0].Title)
	}
	if p.Items[1].ID == "" {
		t.Errorf("missing id should be backfilled")
	}
}

func TestCategories(t *testing.T) {
	doc := `{"items": [
		{"id": "1", "category": "tech"},
		{"id": "2", "category": "art"},
		{"id": "3", "category": "tech"},
		{"id": "4"}
	]}`
	p, err := ParsePayload([]byte(doc))
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}

	got := Categories(p.Items)
	want := []string{"art", "tech"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	// Idempotent without a reload
	again := Categories(p.Items)
	if len(again) != len(got) {
		t.Errorf("Categories is not idempotent: %v then %v", got, again)
	}
}
