// Package ads resolves advertising creatives for named placements and keeps
// track of host-page overrides. Missing creatives are a soft condition:
// callers fall back to a placeholder and content rendering is never blocked.
package ads

import (
	"sync"

	"mediagrid/internal/models"
)

type Assigner struct {
	mu        sync.RWMutex
	overrides map[string]string // slot name -> host-supplied markup
}

func NewAssigner() *Assigner {
	return &Assigner{
		overrides: make(map[string]string),
	}
}

// Resolve returns the units assigned to slotName, in input order.
//
// Exact slots (banner_top, banner_footer, mobile_banner) resolve to at most
// one unit; the first match wins when duplicates exist. The "sidebar" family
// resolves to every sidebar_* unit. The "inline" family resolves to the first
// inline_* unit only: a single creative is reused at every insertion point
// within one render pass.
func (a *Assigner) Resolve(units []models.AdUnit, slotName string) []models.AdUnit {
	switch slotName {
	case models.FamilySidebar:
		var out []models.AdUnit
		for _, u := range units {
			if u.InFamily(models.FamilySidebar) {
				out = append(out, u)
			}
		}
		return out

	case models.FamilyInline:
		for _, u := range units {
			if u.InFamily(models.FamilyInline) {
				return []models.AdUnit{u}
			}
		}
		return nil

	default:
		for _, u := range units {
			if u.Slot == slotName {
				return []models.AdUnit{u}
			}
		}
		return nil
	}
}

// ResolveInline returns the single inline creative, if any.
func (a *Assigner) ResolveInline(units []models.AdUnit) (models.AdUnit, bool) {
	matches := a.Resolve(units, models.FamilyInline)
	if len(matches) == 0 {
		return models.AdUnit{}, false
	}
	return matches[0], true
}

// Override returns the host-supplied markup for a slot, if one was set.
func (a *Assigner) Override(slotName string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	markup, ok := a.overrides[slotName]
	return markup, ok
}

// SetOverride replaces the rendered creative for one slot with host markup.
func (a *Assigner) SetOverride(slotName, markup string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides[slotName] = markup
}

// SetOverrides replaces creatives for several slots at once.
func (a *Assigner) SetOverrides(m map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for slot, markup := range m {
		a.overrides[slot] = markup
	}
}

// ClearOverrides removes all host overrides.
func (a *Assigner) ClearOverrides() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides = make(map[string]string)
}
