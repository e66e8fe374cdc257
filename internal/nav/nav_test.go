package nav

import "testing"

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build("/stay/sunrise")
	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Href)
		}
	}
	if len(active) != 1 || active[0] != "/stay" {
		t.Fatalf("expected only /stay active, got %v", active)
	}
}

func TestBuildRootIsHome(t *testing.T) {
	items := Build("/")
	if !items[0].Active || items[0].Href != "/home" {
		t.Fatalf("expected home active for root path, got %+v", items[0])
	}
}

func TestTrailMarksLastCrumb(t *testing.T) {
	crumbs := Trail(Home, Stay, Current("Sunrise B&B"))
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 crumbs, got %d", len(crumbs))
	}
	if crumbs[0].Active || crumbs[0].Href != "/home" {
		t.Fatalf("unexpected first crumb: %+v", crumbs[0])
	}
	last := crumbs[2]
	if !last.Active || last.Href != "" || last.Label != "Sunrise B&B" {
		t.Fatalf("unexpected last crumb: %+v", last)
	}
	// shared section crumbs stay untouched
	if Stay.Active || Stay.Href != "/stay" {
		t.Fatalf("section crumb mutated: %+v", Stay)
	}
}
