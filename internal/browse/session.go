// Package browse owns one browse context over a loaded payload: the UI state
// machine, the current query, the page cursor, and the control surface a
// host page uses to override ads or force a reload.
package browse

import (
	"context"
	"errors"
	"sync"
	"time"

	"mediagrid/internal/ads"
	"mediagrid/internal/lazy"
	"mediagrid/internal/logger"
	"mediagrid/internal/models"
	"mediagrid/internal/render"
	"mediagrid/internal/store"
)

// State is the UI-level lifecycle: Idle -> Loading -> {Ready, Failed}.
// Failed is sticky until an explicit refresh re-enters Loading.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrNotReady is returned when a browse event arrives while the session is
// not in the Ready state.
var ErrNotReady = errors.New("session is not ready")

// Config carries the tunables of one session.
type Config struct {
	Source         string
	PageSize       int
	AdFrequency    int
	SearchDebounce time.Duration
}

// Session owns the loaded collections, the current query state, and the page
// cursor. Events are serialized under one mutex so each observes a
// consistent snapshot; there is no parallel render path.
type Session struct {
	store    *store.ContentStore
	assigner *ads.Assigner
	cfg      Config

	debouncer *Debouncer
	images    *lazy.Observer

	mu      sync.Mutex
	state   State
	query   models.QueryState
	lastErr error
}

func NewSession(st *store.ContentStore, assigner *ads.Assigner, cfg Config) *Session {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}
	if cfg.AdFrequency == 0 {
		cfg.AdFrequency = render.DefaultAdFrequency
	}
	if cfg.SearchDebounce < 0 {
		cfg.SearchDebounce = 0
	}
	return &Session{
		store:     st,
		assigner:  assigner,
		cfg:       cfg,
		debouncer: NewDebouncer(cfg.SearchDebounce),
		images:    lazy.NewObserver(),
		state:     StateIdle,
		query:     models.QueryState{Sort: models.SortNewest},
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed load, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Query returns the current query state.
func (s *Session) Query() models.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Start performs the initial load: Idle -> Loading -> {Ready, Failed}.
func (s *Session) Start(ctx context.Context) error {
	return s.transitionLoad(ctx, s.store.Load)
}

// Refresh forces a reload from any state, bypassing the payload cache. It is
// the only exit from Failed.
func (s *Session) Refresh(ctx context.Context) error {
	return s.transitionLoad(ctx, s.store.Refresh)
}

func (s *Session) transitionLoad(ctx context.Context, load func(context.Context, string) error) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	err := load(ctx, s.cfg.Source)

	s.mu.Lock()
	defer s.mu.Unlock()

	if errors.Is(err, store.ErrSuperseded) {
		// A newer load owns the state now; report the supersede and leave
		// the machine alone.
		return err
	}
	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.query = models.QueryState{Sort: models.SortNewest}
		logger.Get().Error().Err(err).Str("source", s.cfg.Source).Msg("load failed")
		return err
	}

	s.state = StateReady
	s.lastErr = nil
	s.query = models.QueryState{Sort: models.SortNewest}
	return nil
}

// Search replaces the search term and resets pagination.
func (s *Session) Search(term string) error {
	return s.updateQuery(func(q *models.QueryState) {
		q.SearchTerm = term
	})
}

// SearchDebounced schedules a Search after the quiet period; only the last
// call within the window takes effect.
func (s *Session) SearchDebounced(term string) {
	s.debouncer.Trigger(func() {
		if err := s.Search(term); err != nil {
			logger.Get().Debug().Err(err).Msg("debounced search dropped")
		}
	})
}

// FilterCategory replaces the category filter and resets pagination. An
// empty category matches all items.
func (s *Session) FilterCategory(category string) error {
	return s.updateQuery(func(q *models.QueryState) {
		q.Category = category
	})
}

// SetSort replaces the sort key and resets pagination.
func (s *Session) SetSort(key models.SortKey) error {
	return s.updateQuery(func(q *models.QueryState) {
		q.Sort = key
	})
}

func (s *Session) updateQuery(apply func(*models.QueryState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	apply(&s.query)
	s.query.Page = 0
	return nil
}

// LoadMore advances the page cursor without touching the other query fields
// and returns the newly revealed placements, to be appended to what is
// already displayed. When no more items remain it returns an empty tail.
func (s *Session) LoadMore() ([]render.Placement, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, false, ErrNotReady
	}

	filtered := s.store.Query(s.query)
	if !render.HasMore(len(filtered), s.query.Page, s.cfg.PageSize) {
		return nil, false, nil
	}
	s.query.Page++

	tail := render.PageTail(filtered, s.query.Page, s.cfg.PageSize)
	start := s.query.Page*s.cfg.PageSize + 1
	placements := render.Interleave(tail, start, s.cfg.AdFrequency, s.inlineAd())
	s.trackThumbnails(tail)

	return placements, render.HasMore(len(filtered), s.query.Page, s.cfg.PageSize), nil
}

// View holds everything the presentation layer needs for one full render.
type View struct {
	State      State                  `json:"state"`
	Query      models.QueryState      `json:"query"`
	Placements []render.Placement     `json:"placements"`
	HasMore    bool                   `json:"has_more"`
	Total      int                    `json:"total"`
	Categories []string               `json:"categories"`
	Branding   models.BrandingProfile `json:"branding"`
}

// View computes the full render for the session's current query.
func (s *Session) View() View {
	s.mu.Lock()
	q := s.query
	st := s.state
	s.mu.Unlock()
	v := s.ViewFor(q)
	v.State = st
	return v
}

// ViewFor computes the render decision for an arbitrary query without
// mutating the session. Ordinals start at 1 because the window is always a
// re-render from the top.
func (s *Session) ViewFor(q models.QueryState) View {
	filtered := s.store.Query(q)
	visible := render.Paginate(filtered, q.Page, s.cfg.PageSize)
	placements := render.Interleave(visible, 1, s.cfg.AdFrequency, s.inlineAd())
	s.trackThumbnails(visible)

	return View{
		State:      StateReady,
		Query:      q,
		Placements: placements,
		HasMore:    render.HasMore(len(filtered), q.Page, s.cfg.PageSize),
		Total:      len(filtered),
		Categories: s.store.Categories(),
		Branding:   s.store.Branding(),
	}
}

func (s *Session) inlineAd() *models.AdUnit {
	unit, ok := s.assigner.ResolveInline(s.store.Ads())
	if !ok {
		return nil
	}
	return &unit
}

// SlotMarkup returns the final markup for a static placement slot: a host
// override if one was set, otherwise the resolved creatives, otherwise the
// placeholder. Missing creatives never block rendering.
func (s *Session) SlotMarkup(slotName string) string {
	if markup, ok := s.assigner.Override(slotName); ok {
		return markup
	}
	units := s.assigner.Resolve(s.store.Ads(), slotName)
	if len(units) == 0 {
		return render.AdPlaceholder(slotName)
	}
	if slotName == models.FamilySidebar {
		return render.SidebarMarkup(units)
	}
	return render.AdMarkup(units[0])
}

// ReplaceAd lets the host page override one slot's markup after the initial
// render. Overrides survive refreshes until cleared.
func (s *Session) ReplaceAd(slotName, markup string) {
	s.assigner.SetOverride(slotName, markup)
}

// ReplaceAllAds overrides several slots at once.
func (s *Session) ReplaceAllAds(m map[string]string) {
	s.assigner.SetOverrides(m)
}

// ClearAdOverrides restores resolved creatives for every slot.
func (s *Session) ClearAdOverrides() {
	s.assigner.ClearOverrides()
}

// trackThumbnails registers the visible thumbnails with the lazy observer so
// each fires exactly once when first reported visible.
func (s *Session) trackThumbnails(visible []models.ContentItem) {
	for _, item := range visible {
		if item.ThumbnailURL == "" {
			continue
		}
		id := item.ID
		s.images.Register(id, func() {
			logger.Get().Debug().Str("item_id", id).Msg("thumbnail visible")
		})
	}
}

// MarkImageVisible reports a thumbnail as visible; the first report fires
// the registered callback, later ones are no-ops.
func (s *Session) MarkImageVisible(itemID string) bool {
	return s.images.MarkVisible(itemID)
}
