package api

import (
	"time"

	"mediagrid/internal/browse"
	"mediagrid/internal/config"
	"mediagrid/internal/logger"
	"mediagrid/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	config  *config.Config
	session *browse.Session
}

func NewHandlers(cfg *config.Config, session *browse.Session) *Handlers {
	return &Handlers{
		config:  cfg,
		session: session,
	}
}

// browseQuery is the validated query-parameter shape of GET /api/v1/items.
type browseQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Sort     string `query:"sort" validate:"omitempty,oneof=newest popular"`
	Page     int    `query:"page" validate:"gte=0"`
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"state":  h.session.State(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GetItems handles GET /api/v1/items. It computes a view for the requested
// query without touching the session's own cursor; recomputed queries always
// start at the requested page with ordinals from the top.
func (h *Handlers) GetItems(c *fiber.Ctx) error {
	q, ok := c.Locals("queryParams").(*browseQuery)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}

	sortKey := models.SortKey(q.Sort)
	if sortKey == "" {
		sortKey = models.SortNewest
	}

	view := h.session.ViewFor(models.QueryState{
		SearchTerm: q.Search,
		Category:   q.Category,
		Sort:       sortKey,
		Page:       q.Page,
	})
	return c.JSON(view)
}

// GetCategories handles GET /api/v1/categories
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.session.View().Categories,
	})
}

// GetBranding handles GET /api/v1/branding
func (h *Handlers) GetBranding(c *fiber.Ctx) error {
	return c.JSON(h.session.View().Branding)
}

// GetAdSlot handles GET /api/v1/ads/:slot
func (h *Handlers) GetAdSlot(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if slot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slot name is required",
		})
	}
	return c.JSON(fiber.Map{
		"slot":   slot,
		"markup": h.session.SlotMarkup(slot),
	})
}

// PostSearch handles POST /api/v1/session/search
func (h *Handlers) PostSearch(c *fiber.Ctx) error {
	var req struct {
		Term string `json:"term"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	h.session.SearchDebounced(req.Term)
	return c.JSON(fiber.Map{"status": "scheduled"})
}

// PostCategory handles POST /api/v1/session/category
func (h *Handlers) PostCategory(c *fiber.Ctx) error {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	if err := h.session.FilterCategory(req.Category); err != nil {
		return h.notReady(c, err)
	}
	return c.JSON(h.session.View())
}

// PostSort handles POST /api/v1/session/sort
func (h *Handlers) PostSort(c *fiber.Ctx) error {
	var req struct {
		Sort string `json:"sort" validate:"oneof=newest popular"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}
	if req.Sort != string(models.SortNewest) && req.Sort != string(models.SortPopular) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Sort must be one of: newest, popular",
		})
	}

	if err := h.session.SetSort(models.SortKey(req.Sort)); err != nil {
		return h.notReady(c, err)
	}
	return c.JSON(h.session.View())
}

// PostLoadMore handles POST /api/v1/session/more. The response carries only
// the newly revealed tail; the client appends it to what is displayed.
func (h *Handlers) PostLoadMore(c *fiber.Ctx) error {
	placements, hasMore, err := h.session.LoadMore()
	if err != nil {
		return h.notReady(c, err)
	}
	return c.JSON(fiber.Map{
		"placements": placements,
		"has_more":   hasMore,
	})
}

// PostImageVisible handles POST /api/v1/images/:id/visible
func (h *Handlers) PostImageVisible(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image ID is required",
		})
	}
	return c.JSON(fiber.Map{
		"fired": h.session.MarkImageVisible(id),
	})
}

// Refresh handles POST /api/v1/admin/refresh: the only exit from a failed
// state, bypassing the payload cache.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	if err := h.session.Refresh(c.Context()); err != nil {
		logger.Get().Error().Err(err).Msg("refresh failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to refresh content",
		})
	}
	return c.JSON(fiber.Map{
		"status": "refreshed",
		"items":  h.session.View().Total,
	})
}

// PutAdOverride handles PUT /api/v1/admin/ads/:slot
func (h *Handlers) PutAdOverride(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if slot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slot name is required",
		})
	}

	var req struct {
		Markup string `json:"markup"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	h.session.ReplaceAd(slot, req.Markup)
	return c.JSON(fiber.Map{"status": "replaced", "slot": slot})
}

// PutAdOverrides handles PUT /api/v1/admin/ads
func (h *Handlers) PutAdOverrides(c *fiber.Ctx) error {
	var req struct {
		Overrides map[string]string `json:"overrides"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}
	if len(req.Overrides) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No overrides provided",
		})
	}

	h.session.ReplaceAllAds(req.Overrides)
	return c.JSON(fiber.Map{"status": "replaced", "slots": len(req.Overrides)})
}

// DeleteAdOverrides handles DELETE /api/v1/admin/ads/overrides
func (h *Handlers) DeleteAdOverrides(c *fiber.Ctx) error {
	h.session.ClearAdOverrides()
	return c.JSON(fiber.Map{"status": "cleared"})
}

func (h *Handlers) notReady(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": err.Error(),
		"state": h.session.State(),
	})
}
