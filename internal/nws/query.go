package nws

import (
	"fmt"

	"github.com/dc404/weathermap/internal/params"
)

// QueryKind names the shape of an alerts query.
type QueryKind string

const (
	QueryPoint QueryKind = "point"
	QueryArea  QueryKind = "area"
	QueryZone  QueryKind = "zone"
)

// QueryDescriptor is a side-effect-free description of the HTTP call(s) a
// fetch will make. Zone queries always carry an auxiliary point-metadata
// lookup whose response supplies the real zone parameter; when that lookup
// yields no zone identifier the fetch degrades to the point query instead.
type QueryDescriptor struct {
	Kind         QueryKind
	PrimaryURL   string
	AuxiliaryURL string // set only for QueryZone
	FallbackURL  string // point query used when zone resolution degrades
}

// Resolve maps the configured mode and current coordinates to a query
// descriptor. It never fails: area codes pass through verbatim (an invalid
// code is a provider-side error) and coordinate ranges are caller-enforced.
func Resolve(mode params.QueryMode, snap params.Snapshot, settings params.AlertSettings) QueryDescriptor {
	return resolveAgainst(BaseURL, mode, snap, settings)
}

func resolveAgainst(base string, mode params.QueryMode, snap params.Snapshot, settings params.AlertSettings) QueryDescriptor {
	switch mode {
	case params.ModeState:
		return QueryDescriptor{
			Kind:       QueryArea,
			PrimaryURL: fmt.Sprintf("%s/alerts/active?area=%s", base, settings.AreaCode),
		}
	case params.ModeZone:
		return QueryDescriptor{
			Kind: QueryZone,
			// PrimaryURL is resolved after the auxiliary lookup.
			AuxiliaryURL: fmt.Sprintf("%s/points/%.4f,%.4f", base, snap.Lat, snap.Lon),
			FallbackURL:  pointURL(base, snap),
		}
	default:
		return QueryDescriptor{
			Kind:       QueryPoint,
			PrimaryURL: pointURL(base, snap),
		}
	}
}

func pointURL(base string, snap params.Snapshot) string {
	return fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", base, snap.Lat, snap.Lon)
}

func zoneURL(base, zoneID string) string {
	return fmt.Sprintf("%s/alerts/active?zone=%s", base, zoneID)
}
