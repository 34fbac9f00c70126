// Package mapview turns a property collection into a map viewport and a set
// of classified markers. There is no persistent state: every filter change
// triggers a full recompute from the current result set.
package mapview

import (
	"github.com/paulmach/orb"

	"inmoscope/server/internal/geomath"
	"inmoscope/server/internal/models"
	"inmoscope/server/internal/stats"
)

// Synthesizer computes viewports around a configured fallback center.
type Synthesizer struct {
	defaultCenter orb.Point // lon, lat
	defaultZoom   int
}

// NewSynthesizer configures the fallback viewport used when no property has
// a complete coordinate pair.
func NewSynthesizer(defaultLat, defaultLon float64, defaultZoom int) *Synthesizer {
	return &Synthesizer{
		defaultCenter: orb.Point{defaultLon, defaultLat},
		defaultZoom:   defaultZoom,
	}
}

// Viewport computes the center and zoom for the mappable subset of the
// collection. The center is the midpoint of the bounding box extremes, not a
// weighted centroid; zoom comes from the box diagonal. With no mappable
// property the default viewport is returned.
func (s *Synthesizer) Viewport(properties []models.Property) models.MapViewport {
	var points orb.MultiPoint
	for i := range properties {
		p := &properties[i]
		if p.HasCoordinates() {
			points = append(points, orb.Point{*p.Longitude, *p.Latitude})
		}
	}

	if len(points) == 0 {
		return models.MapViewport{
			CenterLatitude:  s.defaultCenter.Lat(),
			CenterLongitude: s.defaultCenter.Lon(),
			Zoom:            s.defaultZoom,
		}
	}

	bound := points.Bound()
	center := bound.Center()

	return models.MapViewport{
		CenterLatitude:  center.Lat(),
		CenterLongitude: center.Lon(),
		Zoom: geomath.ZoomLevel(
			bound.Min.Lat(), bound.Max.Lat(),
			bound.Min.Lon(), bound.Max.Lon(),
		),
	}
}

// Markers builds one classified marker per mappable property, reusing the
// same score bands as the list views.
func (s *Synthesizer) Markers(properties []models.Property) []models.Marker {
	markers := make([]models.Marker, 0, len(properties))
	for i := range properties {
		p := &properties[i]
		if !p.HasCoordinates() {
			continue
		}
		markers = append(markers, models.Marker{
			PropertyID: p.ID,
			Source:     p.Source,
			Latitude:   *p.Latitude,
			Longitude:  *p.Longitude,
			Title:      p.Title,
			Tier:       stats.Classify(p.InvestmentScore),
		})
	}
	return markers
}
