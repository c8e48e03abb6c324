// Package mapurl builds the RainViewer embed URL from a parameter snapshot.
package mapurl

import (
	"fmt"
	"strings"

	"github.com/dc404/weathermap/internal/params"
)

const baseURL = "https://www.rainviewer.com/map.html"

// Build renders the map URL for a snapshot. It is a pure function of the
// snapshot: coordinates at 4 decimals, zoom clamped to [1,12] regardless of
// caller, and the nine query parameters in the order the embed page expects.
func Build(snap params.Snapshot) string {
	loc := fmt.Sprintf("%.4f,%.4f,%d", snap.Lat, snap.Lon, params.ClampZoom(snap.Zoom))

	pairs := []string{
		"loc=" + loc,
		"oCS=1",
		fmt.Sprintf("c=%d", snap.ColorScheme),
		fmt.Sprintf("o=%d", snap.Opacity),
		"lm=" + flag(snap.ShowLegend),
		"layer=" + string(snap.Layer),
		"sm=" + flag(snap.ShowLabels),
		"sn=" + flag(snap.ShowSnow),
		fmt.Sprintf("ts=%d", snap.Timestep),
	}

	return baseURL + "?" + strings.Join(pairs, "&")
}

// EmbedHTML wraps the map URL in the iframe snippet offered by the
// copy-embed action.
func EmbedHTML(snap params.Snapshot) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="100%%" frameborder="0" style="border:0;height:50vh;" allowfullscreen></iframe>`,
		Build(snap),
	)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
