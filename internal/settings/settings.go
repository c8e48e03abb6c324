// Package settings persists the map and alert-query configuration as a
// flat key/value JSON file, merging stored values over built-in defaults.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/dc404/weathermap/internal/params"
)

// DefaultPath is the settings file written next to the binary by default.
const DefaultPath = "settings.json"

// fileSettings mirrors the on-disk key set. Field names match the embed
// URL's parameter names where one exists.
type fileSettings struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Zoom  int     `json:"zoom"`
	Layer string  `json:"layer"`
	C     int     `json:"c"`
	O     int     `json:"o"`
	LM    bool    `json:"lm"`
	SM    bool    `json:"sm"`
	SN    bool    `json:"sn"`
	TS    int     `json:"ts"`

	AlertsAuto        bool   `json:"alerts_auto"`
	AlertsIntervalSec int    `json:"alerts_interval_sec"`
	AlertsMode        string `json:"alerts_mode"`
	AlertsArea        string `json:"alerts_area"`
	AlertsUserAgent   string `json:"alerts_user_agent"`
}

func fromDefaults(snap params.Snapshot, alerts params.AlertSettings) fileSettings {
	return fileSettings{
		Lat:   snap.Lat,
		Lon:   snap.Lon,
		Zoom:  snap.Zoom,
		Layer: string(snap.Layer),
		C:     snap.ColorScheme,
		O:     snap.Opacity,
		LM:    snap.ShowLegend,
		SM:    snap.ShowLabels,
		SN:    snap.ShowSnow,
		TS:    snap.Timestep,

		AlertsAuto:        alerts.AutoRefresh,
		AlertsIntervalSec: alerts.IntervalSeconds,
		AlertsMode:        string(alerts.Mode),
		AlertsArea:        alerts.AreaCode,
		AlertsUserAgent:   alerts.UserAgent,
	}
}

func (f fileSettings) split() (params.Snapshot, params.AlertSettings) {
	snap := params.Snapshot{
		Lat:         f.Lat,
		Lon:         f.Lon,
		Zoom:        params.ClampZoom(f.Zoom),
		Layer:       params.Layer(f.Layer),
		ColorScheme: f.C,
		Opacity:     f.O,
		ShowLegend:  f.LM,
		ShowLabels:  f.SM,
		ShowSnow:    f.SN,
		Timestep:    f.TS,
	}
	alerts := params.AlertSettings{
		Mode:            params.QueryMode(f.AlertsMode),
		AreaCode:        f.AlertsArea,
		AutoRefresh:     f.AlertsAuto,
		IntervalSeconds: params.ClampInterval(f.AlertsIntervalSec),
		UserAgent:       f.AlertsUserAgent,
	}
	if alerts.UserAgent == "" {
		alerts.UserAgent = params.FallbackUserAgent
	}
	return snap, alerts
}

// Load reads the settings file and merges stored keys over the built-in
// defaults. Missing keys keep their defaults; a missing or unreadable file
// yields the defaults unchanged. Load never fails.
func Load(path string) (params.Snapshot, params.AlertSettings) {
	merged := fromDefaults(params.DefaultSnapshot(), params.DefaultAlertSettings())

	data, err := os.ReadFile(path)
	if err != nil {
		return merged.split()
	}
	// Unmarshal over the defaults: keys present in the file win, everything
	// else keeps its default. A malformed file is treated as absent.
	if err := json.Unmarshal(data, &merged); err != nil {
		return fromDefaults(params.DefaultSnapshot(), params.DefaultAlertSettings()).split()
	}
	return merged.split()
}

// Save serializes the full current parameter and alert-settings snapshot.
// The write is atomic so a crash mid-save cannot truncate the file.
func Save(path string, snap params.Snapshot, alerts params.AlertSettings) error {
	data, err := json.MarshalIndent(fromDefaults(snap, alerts), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
