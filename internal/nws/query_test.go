package nws

import (
	"testing"

	"github.com/dc404/weathermap/internal/params"
)

func testSnapshot() params.Snapshot {
	snap := params.DefaultSnapshot()
	snap.Lat = 49.7847
	snap.Lon = -94.9921
	return snap
}

func TestResolve_Point(t *testing.T) {
	desc := Resolve(params.ModePoint, testSnapshot(), params.DefaultAlertSettings())

	if desc.Kind != QueryPoint {
		t.Errorf("Kind = %s, want %s", desc.Kind, QueryPoint)
	}
	want := "https://api.weather.gov/alerts/active?point=49.7847,-94.9921"
	if desc.PrimaryURL != want {
		t.Errorf("PrimaryURL = %s, want %s", desc.PrimaryURL, want)
	}
	if desc.AuxiliaryURL != "" {
		t.Errorf("AuxiliaryURL = %s, want empty", desc.AuxiliaryURL)
	}
}

func TestResolve_State(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AreaCode = "FL"

	desc := Resolve(params.ModeState, testSnapshot(), settings)

	if desc.Kind != QueryArea {
		t.Errorf("Kind = %s, want %s", desc.Kind, QueryArea)
	}
	want := "https://api.weather.gov/alerts/active?area=FL"
	if desc.PrimaryURL != want {
		t.Errorf("PrimaryURL = %s, want %s", desc.PrimaryURL, want)
	}
	if desc.AuxiliaryURL != "" {
		t.Errorf("AuxiliaryURL = %s, want empty (no auxiliary call for area queries)", desc.AuxiliaryURL)
	}
}

func TestResolve_Zone(t *testing.T) {
	desc := Resolve(params.ModeZone, testSnapshot(), params.DefaultAlertSettings())

	if desc.Kind != QueryZone {
		t.Errorf("Kind = %s, want %s", desc.Kind, QueryZone)
	}
	wantAux := "https://api.weather.gov/points/49.7847,-94.9921"
	if desc.AuxiliaryURL != wantAux {
		t.Errorf("AuxiliaryURL = %s, want %s", desc.AuxiliaryURL, wantAux)
	}
	if desc.PrimaryURL != "" {
		t.Errorf("PrimaryURL = %s, want empty (resolved after the auxiliary lookup)", desc.PrimaryURL)
	}

	// The degrade-to-point fallback must equal the point-mode resolution
	// for the same coordinates.
	point := Resolve(params.ModePoint, testSnapshot(), params.DefaultAlertSettings())
	if desc.FallbackURL != point.PrimaryURL {
		t.Errorf("FallbackURL = %s, want %s", desc.FallbackURL, point.PrimaryURL)
	}
}
