package ads

import (
	"testing"

	"mediagrid/internal/models"
)

func testUnits() []models.AdUnit {
	return []models.AdUnit{
		{Slot: "sidebar_1", ImageURL: "http://x/s1.png"},
		{Slot: "sidebar_2", ImageURL: "http://x/s2.png"},
		{Slot: "inline_1", ImageURL: "http://x/i1.png"},
		{Slot: "inline_2", ImageURL: "http://x/i2.png"},
		{Slot: "banner_top", ImageURL: "http://x/top-a.png"},
		{Slot: "banner_top", ImageURL: "http://x/top-b.png"},
	}
}

func TestResolveSidebarReturnsAllInOrder(t *testing.T) {
	a := NewAssigner()
	got := a.Resolve(testUnits(), models.FamilySidebar)
	if len(got) != 2 {
		t.Fatalf("expected 2 sidebar units, got %d", len(got))
	}
	if got[0].Slot != "sidebar_1" || got[1].Slot != "sidebar_2" {
		t.Errorf("sidebar units out of order: %+v", got)
	}
}

func TestResolveInlineReturnsFirstOnly(t *testing.T) {
	a := NewAssigner()
	got := a.Resolve(testUnits(), models.FamilyInline)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 inline unit, got %d", len(got))
	}
	if got[0].Slot != "inline_1" {
		t.Errorf("expected first inline unit, got %q", got[0].Slot)
	}
}

func TestResolveExactFirstMatchWins(t *testing.T) {
	a := NewAssigner()
	got := a.Resolve(testUnits(), models.SlotBannerTop)
	if len(got) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(got))
	}
	if got[0].ImageURL != "http://x/top-a.png" {
		t.Errorf("duplicate exact slot must resolve to the first unit, got %q", got[0].ImageURL)
	}
}

func TestResolveAbsentSlotIsNotAnError(t *testing.T) {
	a := NewAssigner()
	if got := a.Resolve(testUnits(), models.SlotBannerFooter); got != nil {
		t.Errorf("expected no units for absent slot, got %+v", got)
	}
	if got := a.Resolve(nil, models.FamilySidebar); got != nil {
		t.Errorf("expected no units for empty collection, got %+v", got)
	}
}

func TestOverrides(t *testing.T) {
	a := NewAssigner()

	if _, ok := a.Override("banner_top"); ok {
		t.Fatalf("unexpected override before set")
	}

	a.SetOverride("banner_top", "<div>host</div>")
	markup, ok := a.Override("banner_top")
	if !ok || markup != "<div>host</div>" {
		t.Errorf("override not returned: %q, %v", markup, ok)
	}

	a.SetOverrides(map[string]string{
		"banner_footer": "<div>f</div>",
		"mobile_banner": "<div>m</div>",
	})
	if _, ok := a.Override("mobile_banner"); !ok {
		t.Errorf("bulk override missing")
	}

	a.ClearOverrides()
	if _, ok := a.Override("banner_top"); ok {
		t.Errorf("override survived clear")
	}
}
