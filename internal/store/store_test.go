package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediagrid/internal/cache"
	"mediagrid/internal/models"
)

func newTestStore(t *testing.T, payload string) *ContentStore {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	s := NewContentStore(NewFetcher(5*time.Second), nil, 0)
	if err := s.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

const queryPayload = `{"items": [
	{"id": "1", "title": "Go Tooling", "description": "compilers", "category": "tech", "published_at": "2026-08-01T00:00:00Z", "popularity": 10},
	{"id": "2", "title": "Street Art", "description": "murals in Go-town", "category": "art", "published_at": "2026-08-03T00:00:00Z", "popularity": 30},
	{"id": "3", "title": "Jazz Night", "description": "live session", "category": "music", "published_at": "2026-08-02T00:00:00Z", "popularity": 30},
	{"id": "4", "title": "More Tech", "description": "chips", "category": "tech", "published_at": "2026-08-04T00:00:00Z", "popularity": 5}
]}`

func TestQueryNoFilterReturnsAll(t *testing.T) {
	s := newTestStore(t, queryPayload)

	got := s.Query(models.QueryState{Sort: models.SortNewest})
	if len(got) != 4 {
		t.Fatalf("expected all 4 items, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].PublishedAt.After(got[i-1].PublishedAt) {
			t.Errorf("newest order violated at %d: %v after %v", i, got[i].PublishedAt, got[i-1].PublishedAt)
		}
	}
}

func TestQuerySearchMatchesTitleOrDescription(t *testing.T) {
	s := newTestStore(t, queryPayload)

	// "go" hits "Go Tooling" by title and "Street Art" by description,
	// case-insensitively.
	got := s.Query(models.QueryState{SearchTerm: "GO", Sort: models.SortNewest})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestQueryCategoryExactMatch(t *testing.T) {
	s := newTestStore(t, queryPayload)

	got := s.Query(models.QueryState{Category: "tech", Sort: models.SortNewest})
	if len(got) != 2 {
		t.Fatalf("expected 2 tech items, got %d", len(got))
	}
	for _, it := range got {
		if it.Category != "tech" {
			t.Errorf("unexpected category %q", it.Category)
		}
	}
}

func TestQueryPopularSortIsStable(t *testing.T) {
	s := newTestStore(t, queryPayload)

	got := s.Query(models.QueryState{Sort: models.SortPopular})
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Popularity > got[i-1].Popularity {
			t.Errorf("popular order violated at %d", i)
		}
	}
	// Items 2 and 3 tie on popularity; collection order must hold.
	if got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("tie not broken by collection order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestLoadFailureClearsCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(queryPayload))
	}))
	defer srv.Close()

	s := NewContentStore(NewFetcher(5*time.Second), nil, 0)
	if err := s.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() == 0 {
		t.Fatalf("expected items after load")
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	err := s.Load(context.Background(), bad.URL)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if s.Len() != 0 || len(s.Ads()) != 0 || !s.Branding().IsZero() {
		t.Errorf("failed load must not keep stale data")
	}
}

func TestLoadMalformedPayloadIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`42`))
	}))
	defer srv.Close()

	s := NewContentStore(NewFetcher(5*time.Second), nil, 0)
	err := s.Load(context.Background(), srv.URL)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("collections must stay empty after a parse failure")
	}
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(slowEntered)
		<-slowRelease
		_, _ = w.Write([]byte(`{"items": [{"id": "old", "title": "Stale"}]}`))
	}))
	defer slow.Close()

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": "new", "title": "Fresh"}]}`))
	}))
	defer fast.Close()

	s := NewContentStore(NewFetcher(5*time.Second), nil, 0)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Load(context.Background(), slow.URL)
	}()

	<-slowEntered
	if err := s.Load(context.Background(), fast.URL); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	close(slowRelease)
	if err := <-firstDone; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}

	got := s.Query(models.QueryState{})
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("stale load overwrote newer data: %+v", got)
	}
}

func TestLoadUsesPayloadCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(queryPayload))
	}))
	defer srv.Close()

	s := NewContentStore(NewFetcher(5*time.Second), cache.NewMemoryCache(), time.Minute)

	if err := s.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if err := s.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected cached second load, got %d fetches", hits)
	}

	// Refresh bypasses the cache.
	if err := s.Refresh(context.Background(), srv.URL); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("refresh must hit the source, got %d fetches", hits)
	}
}
