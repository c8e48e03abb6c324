package params

// Layer selects the visual layer rendered by the map provider.
type Layer string

const (
	LayerRadar     Layer = "radar"
	LayerSatellite Layer = "satellite"
)

// QueryMode selects how active alerts are looked up.
type QueryMode string

const (
	ModePoint QueryMode = "point"
	ModeState QueryMode = "state"
	ModeZone  QueryMode = "zone"
)

// FallbackUserAgent identifies this client to the alerts provider when no
// user agent is configured. The provider rejects anonymous requests.
const FallbackUserAgent = "dc404-weathermap (contact: you@example.com)"

// Snapshot is an immutable read of the map-display parameters. The view
// builds a fresh one on every control change; nothing mutates it in place.
type Snapshot struct {
	Lat         float64 // [-90, 90]
	Lon         float64 // [-180, 180]
	Zoom        int     // [1, 12]
	Layer       Layer
	ColorScheme int // [0, 9]
	Opacity     int // [0, 100]
	ShowLegend  bool
	ShowLabels  bool
	ShowSnow    bool
	Timestep    int // [1, 4]
}

// AlertSettings holds the alert-query configuration.
type AlertSettings struct {
	Mode            QueryMode
	AreaCode        string // 2-4 letter state/territory code, used when Mode == ModeState
	AutoRefresh     bool
	IntervalSeconds int // [30, 900]
	UserAgent       string
}

// DefaultSnapshot returns the built-in map defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Lat:         49.7847,
		Lon:         -94.9921,
		Zoom:        5,
		Layer:       LayerRadar,
		ColorScheme: 3,
		Opacity:     83,
		ShowLegend:  true,
		ShowLabels:  true,
		ShowSnow:    true,
		Timestep:    2,
	}
}

// DefaultAlertSettings returns the built-in alert-query defaults.
func DefaultAlertSettings() AlertSettings {
	return AlertSettings{
		Mode:            ModePoint,
		AreaCode:        "FL",
		AutoRefresh:     true,
		IntervalSeconds: 120,
		UserAgent:       FallbackUserAgent,
	}
}

// EffectiveUserAgent returns the configured user agent, or the fallback
// identity when the setting is blank.
func (s AlertSettings) EffectiveUserAgent() string {
	if s.UserAgent == "" {
		return FallbackUserAgent
	}
	return s.UserAgent
}

// ClampInterval bounds the refresh interval to the supported range.
func ClampInterval(seconds int) int {
	return clampInt(seconds, 30, 900)
}

// ClampZoom bounds a zoom level to the map provider's supported range.
func ClampZoom(zoom int) int {
	return clampInt(zoom, 1, 12)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
