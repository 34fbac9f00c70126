package models

// Tier classifies an investment score into a presentation band.
type Tier string

const (
	TierUnclassified Tier = "unclassified"
	TierLow          Tier = "low"
	TierMedium       Tier = "medium"
	TierHigh         Tier = "high"
)

// CSSClass returns the stylesheet class the presentation layer attaches to a
// score of this tier. Unclassified scores carry no class.
func (t Tier) CSSClass() string {
	switch t {
	case TierHigh:
		return "score-high"
	case TierMedium:
		return "score-medium"
	case TierLow:
		return "score-low"
	default:
		return ""
	}
}

// MapViewport is the center coordinate and zoom level used to render a map.
// It is recomputed in full whenever the underlying property set changes.
type MapViewport struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	Zoom            int     `json:"zoom"`
}

// Marker is a single map pin with its visual classification tier.
type Marker struct {
	PropertyID string  `json:"property_id"`
	Source     string  `json:"source"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Title      *string `json:"title"`
	Tier       Tier    `json:"tier"`
}

// Notification severities understood by the presentation layer.
const (
	SeverityError = "error"
	SeverityWarn  = "warn"
	SeverityInfo  = "info"
)

// Notification is a severity-tagged message for display. Failures degrade the
// affected list and produce one of these; they are never fatal.
type Notification struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}
