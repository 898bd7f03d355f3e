package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mediagrid/internal/cache"
	"mediagrid/internal/logger"
	"mediagrid/internal/models"
)

// ContentStore owns the loaded collections and answers queries over them.
// Load replaces all three collections wholesale; Query and Categories are
// pure functions of the current state. A generation counter guards against
// out-of-order loads: a result arriving after a newer load started is
// discarded, never committed.
type ContentStore struct {
	fetcher  *Fetcher
	payloads cache.PayloadCache
	cacheTTL time.Duration

	mu         sync.RWMutex
	generation uint64
	items      []models.ContentItem
	ads        []models.AdUnit
	branding   models.BrandingProfile
}

func NewContentStore(fetcher *Fetcher, payloads cache.PayloadCache, cacheTTL time.Duration) *ContentStore {
	return &ContentStore{
		fetcher:  fetcher,
		payloads: payloads,
		cacheTTL: cacheTTL,
	}
}

// Load fetches, parses, and commits one payload. A cached document within
// the TTL short-circuits the network round trip.
func (s *ContentStore) Load(ctx context.Context, source string) error {
	return s.load(ctx, source, false)
}

// Refresh is Load with the payload cache bypassed and repopulated.
func (s *ContentStore) Refresh(ctx context.Context, source string) error {
	return s.load(ctx, source, true)
}

func (s *ContentStore) load(ctx context.Context, source string, bypassCache bool) error {
	gen := s.begin()
	log := logger.Get()

	data, cached := s.cachedPayload(ctx, source, bypassCache)
	if !cached {
		fetched, err := s.fetcher.FetchPayload(ctx, source)
		if err != nil {
			s.fail(gen)
			return err
		}
		data = fetched
		s.storePayload(ctx, source, data)
	}

	payload, err := ParsePayload(data)
	if err != nil {
		s.fail(gen)
		return err
	}

	if !s.commit(gen, payload) {
		log.Debug().Str("source", source).Msg("discarding superseded load result")
		return ErrSuperseded
	}

	log.Info().
		Str("source", source).
		Bool("from_cache", cached).
		Int("items", len(payload.Items)).
		Int("ads", len(payload.Ads)).
		Msg("payload loaded")
	return nil
}

func (s *ContentStore) cachedPayload(ctx context.Context, source string, bypass bool) ([]byte, bool) {
	if bypass || s.payloads == nil {
		return nil, false
	}
	data, ok, err := s.payloads.GetPayload(ctx, cache.SourceKey(source))
	if err != nil {
		logger.Get().Warn().Err(err).Msg("payload cache read failed")
		return nil, false
	}
	return data, ok
}

func (s *ContentStore) storePayload(ctx context.Context, source string, data []byte) {
	if s.payloads == nil {
		return
	}
	if err := s.payloads.StorePayload(ctx, cache.SourceKey(source), data, s.cacheTTL); err != nil {
		logger.Get().Warn().Err(err).Msg("payload cache write failed")
	}
}

// begin marks the start of a load and returns its generation token.
func (s *ContentStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// commit installs the payload if no newer load has started since gen.
func (s *ContentStore) commit(gen uint64, p Payload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.items = p.Items
	s.ads = p.Ads
	s.branding = p.Branding
	return true
}

// fail clears the collections so a failed load never leaves stale data, but
// only when this load is still the current one.
func (s *ContentStore) fail(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.items = nil
	s.ads = nil
	s.branding = models.BrandingProfile{}
}

// Query filters the collection by a case-insensitive substring match on
// title or description and an exact category match, then orders the result
// by the sort key. The sort is stable: ties keep collection order.
// Pagination is the caller's concern.
func (s *ContentStore) Query(state models.QueryState) []models.ContentItem {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))

	out := make([]models.ContentItem, 0, len(items))
	for _, it := range items {
		if term != "" &&
			!strings.Contains(strings.ToLower(it.Title), term) &&
			!strings.Contains(strings.ToLower(it.Description), term) {
			continue
		}
		if state.Category != "" && it.Category != state.Category {
			continue
		}
		out = append(out, it)
	}

	switch state.Sort {
	case models.SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Popularity > out[j].Popularity
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
	}

	return out
}

// Categories lists the distinct category values of the full, unfiltered
// collection in lexicographic order.
func (s *ContentStore) Categories() []string {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()
	return Categories(items)
}

// Ads returns the current ad collection.
func (s *ContentStore) Ads() []models.AdUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ads
}

// Branding returns the current branding overlay.
func (s *ContentStore) Branding() models.BrandingProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branding
}

// Len reports the size of the full collection.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
