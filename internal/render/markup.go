package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mediagrid/internal/models"
)

// ItemCard builds the grid-cell fragment for one content item. Every remote
// string passes through EscapeText before insertion.
func ItemCard(item models.ContentItem, now time.Time) string {
	var b strings.Builder
	b.WriteString(`<article class="content-card">`)
	if item.ThumbnailURL != "" {
		fmt.Fprintf(&b, `<img class="content-thumb" data-src="%s" alt="%s">`,
			EscapeText(item.ThumbnailURL), EscapeText(item.Title))
	}
	fmt.Fprintf(&b, `<span class="content-category">%s</span>`, EscapeText(item.Category))
	fmt.Fprintf(&b, `<h3 class="content-title"><a href="%s" rel="noopener" target="_blank">%s</a></h3>`,
		EscapeText(item.TargetURL), EscapeText(item.Title))
	fmt.Fprintf(&b, `<p class="content-desc">%s</p>`, EscapeText(item.Description))
	fmt.Fprintf(&b, `<time class="content-date">%s</time>`, EscapeText(FormatPublished(item.PublishedAt, now)))
	b.WriteString(`</article>`)
	return b.String()
}

// AdMarkup builds the fragment for one creative.
func AdMarkup(ad models.AdUnit) string {
	return fmt.Sprintf(
		`<div class="ad-unit" data-slot="%s"><a href="%s" rel="noopener sponsored" target="_blank"><img src="%s" alt="%s"></a></div>`,
		EscapeText(ad.Slot), EscapeText(ad.ClickURL), EscapeText(ad.ImageURL), EscapeText(ad.AltText))
}

// AdPlaceholder is the soft-fail fragment shown when no creative resolved
// for a slot.
func AdPlaceholder(slotName string) string {
	return fmt.Sprintf(`<div class="ad-placeholder" data-slot="%s">Advertisement</div>`, EscapeText(slotName))
}

// SidebarMarkup renders every sidebar creative in input order, or a single
// placeholder when the family is empty.
func SidebarMarkup(units []models.AdUnit) string {
	if len(units) == 0 {
		return AdPlaceholder(models.FamilySidebar)
	}
	var b strings.Builder
	for _, u := range units {
		b.WriteString(AdMarkup(u))
	}
	return b.String()
}

// GridHTML renders an ordered placement sequence into grid markup.
func GridHTML(placements []Placement, now time.Time) string {
	var b strings.Builder
	for _, p := range placements {
		switch {
		case p.Item != nil:
			b.WriteString(ItemCard(*p.Item, now))
		case p.Ad != nil:
			b.WriteString(AdMarkup(*p.Ad))
		default:
			b.WriteString(AdPlaceholder(models.FamilyInline))
		}
	}
	return b.String()
}

// BrandingStyle emits a CSS custom-property block for the colors the profile
// sets. Absent colors are omitted so defaults stay in effect.
func BrandingStyle(b models.BrandingProfile) string {
	var props []string
	if b.PrimaryColor != "" {
		props = append(props, fmt.Sprintf("--primary-color:%s", EscapeText(b.PrimaryColor)))
	}
	if b.SecondaryColor != "" {
		props = append(props, fmt.Sprintf("--secondary-color:%s", EscapeText(b.SecondaryColor)))
	}
	if b.AccentColor != "" {
		props = append(props, fmt.Sprintf("--accent-color:%s", EscapeText(b.AccentColor)))
	}
	if len(props) == 0 {
		return ""
	}
	return fmt.Sprintf("<style>:root{%s}</style>", strings.Join(props, ";"))
}

// BrandingHeader renders the logo or company name, if either is set.
func BrandingHeader(b models.BrandingProfile) string {
	switch {
	case b.LogoURL != "":
		return fmt.Sprintf(`<img class="brand-logo" src="%s" alt="%s">`,
			EscapeText(b.LogoURL), EscapeText(b.CompanyName))
	case b.CompanyName != "":
		return fmt.Sprintf(`<span class="brand-name">%s</span>`, EscapeText(b.CompanyName))
	default:
		return ""
	}
}

// SocialLinks renders the social link list in platform order.
func SocialLinks(b models.BrandingProfile) string {
	if len(b.SocialLinks) == 0 {
		return ""
	}
	platforms := make([]string, 0, len(b.SocialLinks))
	for p := range b.SocialLinks {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	var sb strings.Builder
	sb.WriteString(`<nav class="social-links">`)
	for _, p := range platforms {
		fmt.Fprintf(&sb, `<a href="%s" rel="noopener" target="_blank">%s</a>`,
			EscapeText(b.SocialLinks[p]), EscapeText(p))
	}
	sb.WriteString(`</nav>`)
	return sb.String()
}
