package models

import "strings"

// AdUnit is one advertising creative bound to a named slot.
type AdUnit struct {
	Slot     string `json:"slot"`
	ImageURL string `json:"image_url"`
	ClickURL string `json:"click_url"`
	AltText  string `json:"alt_text"`
}

// Slot names with exact-match resolution. Prefix families (sidebar_*,
// inline_*) are addressed by their family name instead.
const (
	SlotBannerTop    = "banner_top"
	SlotBannerFooter = "banner_footer"
	SlotMobileBanner = "mobile_banner"
)

// Prefix slot families. A family may hold any number of units
// (sidebar_1, sidebar_2, ...).
const (
	FamilySidebar = "sidebar"
	FamilyInline  = "inline"
)

// InFamily reports whether the unit's slot belongs to the given prefix
// family, e.g. InFamily("sidebar") matches "sidebar_1" and "sidebar_2".
func (a AdUnit) InFamily(family string) bool {
	return strings.HasPrefix(a.Slot, family+"_")
}
