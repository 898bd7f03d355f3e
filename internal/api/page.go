package api

import (
	"fmt"
	"strings"
	"time"

	"mediagrid/internal/browse"
	"mediagrid/internal/models"
	"mediagrid/internal/render"

	"github.com/gofiber/fiber/v2"
)

// GetPage handles GET /: the full server-rendered grid page, assembled from
// the same render fragments the JSON API exposes.
func (h *Handlers) GetPage(c *fiber.Ctx) error {
	view := h.session.View()
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	if view.State == browse.StateFailed {
		return c.SendString(h.errorPage())
	}

	return c.SendString(h.gridPage(view))
}

func (h *Handlers) gridPage(view browse.View) string {
	now := time.Now()
	title := "Media Grid"
	if view.Branding.CompanyName != "" {
		title = view.Branding.CompanyName
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>%s</title>", render.EscapeText(title))
	b.WriteString(render.BrandingStyle(view.Branding))
	b.WriteString("</head><body>")

	b.WriteString(`<header id="site-header">`)
	b.WriteString(render.BrandingHeader(view.Branding))
	if view.Branding.Tagline != "" {
		fmt.Fprintf(&b, `<p class="brand-tagline">%s</p>`, render.EscapeText(view.Branding.Tagline))
	}
	fmt.Fprintf(&b, `<div class="ad-slot" data-placement="header">%s</div>`, h.session.SlotMarkup(models.SlotBannerTop))
	b.WriteString(`</header>`)

	b.WriteString(`<div class="controls">`)
	b.WriteString(`<input id="search-input" type="search" placeholder="Search...">`)
	b.WriteString(`<select id="category-filter"><option value="">All categories</option>`)
	for _, cat := range view.Categories {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, render.EscapeText(cat), render.EscapeText(cat))
	}
	b.WriteString(`</select>`)
	b.WriteString(`<select id="sort-filter"><option value="newest">Newest</option><option value="popular">Most popular</option></select>`)
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<aside class="ad-slot" data-placement="sidebar">%s</aside>`, h.session.SlotMarkup(models.FamilySidebar))

	fmt.Fprintf(&b, `<main id="content-grid">%s</main>`, render.GridHTML(view.Placements, now))

	if view.HasMore {
		b.WriteString(`<button id="load-more-control">Load more</button>`)
	} else {
		b.WriteString(`<button id="load-more-control" hidden>Load more</button>`)
	}

	fmt.Fprintf(&b, `<div class="ad-slot" data-placement="mobile">%s</div>`, h.session.SlotMarkup(models.SlotMobileBanner))

	b.WriteString(`<footer id="site-footer">`)
	fmt.Fprintf(&b, `<div class="ad-slot" data-placement="footer">%s</div>`, h.session.SlotMarkup(models.SlotBannerFooter))
	b.WriteString(render.SocialLinks(view.Branding))
	b.WriteString(`</footer>`)

	b.WriteString("</body></html>")
	return b.String()
}

// errorPage replaces the grid wholesale after a failed load; no partial
// content survives.
func (h *Handlers) errorPage() string {
	return `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Media Grid</title></head><body>` +
		`<main id="content-grid"><p class="load-error">Content could not be loaded. Please try again.</p></main>` +
		`</body></html>`
}
