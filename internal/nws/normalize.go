package nws

import (
	"encoding/json"
	"time"

	"github.com/dc404/weathermap/internal/models"
)

// endsTimeFormat is how alert end times are shown, in the viewer's local zone.
const endsTimeFormat = "Jan 02 2006, 03:04 PM"

type featureCollection struct {
	Features json.RawMessage `json:"features"`
}

type alertFeature struct {
	ID         string          `json:"id"`
	Properties alertProperties `json:"properties"`
}

type alertProperties struct {
	ID         string `json:"id"`
	AtID       string `json:"@id"`
	Event      string `json:"event"`
	Severity   string `json:"severity"`
	Urgency    string `json:"urgency"`
	Certainty  string `json:"certainty"`
	Ends       string `json:"ends"`
	Expires    string `json:"expires"`
	Effective  string `json:"effective"`
	AreaDesc   string `json:"areaDesc"`
	SenderName string `json:"senderName"`
}

// Normalize converts a raw alerts response body into display records,
// preserving provider order. It never fails: an absent or non-array
// features field yields zero records, and per-field problems degrade to
// placeholders so one bad field never drops an alert.
func Normalize(raw []byte) []models.AlertRecord {
	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil
	}

	var features []alertFeature
	if err := json.Unmarshal(fc.Features, &features); err != nil {
		return nil
	}

	records := make([]models.AlertRecord, 0, len(features))
	for _, f := range features {
		p := f.Properties
		records = append(records, models.AlertRecord{
			Event:      orPlaceholder(p.Event),
			Severity:   orPlaceholder(p.Severity),
			Urgency:    orPlaceholder(p.Urgency),
			Certainty:  orPlaceholder(p.Certainty),
			Ends:       formatEnds(firstNonEmpty(p.Ends, p.Expires, p.Effective)),
			AreaDesc:   p.AreaDesc,
			SenderName: p.SenderName,
			DetailURL:  firstNonEmpty(p.ID, f.ID, p.AtID),
		})
	}
	return records
}

// formatEnds renders an RFC3339 timestamp (Zulu or offset) in local time.
// Unparsable input is kept verbatim; empty input shows the placeholder.
func formatEnds(raw string) string {
	if raw == "" {
		return models.Placeholder
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Local().Format(endsTimeFormat)
}

func orPlaceholder(s string) string {
	if s == "" {
		return models.Placeholder
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
