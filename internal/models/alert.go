package models

import "time"

// Placeholder stands in for alert fields the provider omits, keeping
// display columns aligned instead of collapsing.
const Placeholder = "—"

// Severity levels reported by the alerts provider.
const (
	SeverityExtreme  = "Extreme"
	SeveritySevere   = "Severe"
	SeverityModerate = "Moderate"
	SeverityMinor    = "Minor"
)

// AlertRecord is one normalized hazard notice. Records carry no identity
// across fetches; a refresh produces a fresh set.
type AlertRecord struct {
	Event     string // e.g., "Tornado Warning", "Flood Advisory"
	Severity  string
	Urgency   string // e.g., "Immediate", "Expected"
	Certainty string // e.g., "Likely", "Possible"
	// Ends is display text: the first available of the provider's ends,
	// expires, or effective timestamps, formatted locally. An unparsable
	// timestamp is kept verbatim; a missing one shows the placeholder.
	Ends       string
	AreaDesc   string
	SenderName string
	DetailURL  string // alert detail page, empty when the provider sends no id
}

// Office returns the issuing office when known, falling back to the area
// description.
func (a AlertRecord) Office() string {
	if a.SenderName != "" {
		return a.SenderName
	}
	return a.AreaDesc
}

// Feed is one complete fetch result. It replaces any prior feed wholesale;
// there is no merging across fetches.
type Feed struct {
	Records   []AlertRecord // provider order preserved
	SourceURL string
	FetchedAt time.Time
}
