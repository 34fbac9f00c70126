// Package view assembles what the presentation layer renders: entity lists,
// derived statistics, map viewports and severity-tagged notifications. One
// call is one synchronous unit of work over its own criteria value; nothing
// is shared across requests. An upstream failure degrades the affected list
// to empty and adds a notification instead of failing the whole view.
package view

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"inmoscope/server/internal/mapview"
	"inmoscope/server/internal/models"
	"inmoscope/server/internal/query"
	"inmoscope/server/internal/stats"
)

// API is the slice of the upstream client the view layer consumes.
type API interface {
	Cities(ctx context.Context) ([]string, error)
	Neighborhoods(ctx context.Context, city string) ([]string, error)
	Properties(ctx context.Context, criteria query.Criteria) ([]models.Property, error)
	MapProperties(ctx context.Context, criteria query.Criteria) ([]models.Property, error)
	Opportunities(ctx context.Context, criteria query.Criteria) ([]models.InvestmentOpportunity, error)
}

// Service builds dashboard and map snapshots. It is stateless; construct one
// and share it freely, or build one per call.
type Service struct {
	api    API
	synth  *mapview.Synthesizer
	logger *logrus.Logger
}

func NewService(api API, synth *mapview.Synthesizer, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		synth:  synth,
		logger: logger,
	}
}

// Snapshot is everything the listing dashboard renders for one criteria set.
type Snapshot struct {
	Cities        []string                       `json:"cities"`
	Properties    []models.Property              `json:"properties"`
	Opportunities []models.InvestmentOpportunity `json:"opportunities"`
	Stats         models.PropertyStats           `json:"stats"`
	Notifications []models.Notification          `json:"notifications"`
}

// MapSnapshot is everything the map page renders for one criteria set.
type MapSnapshot struct {
	Viewport      models.MapViewport    `json:"viewport"`
	Markers       []models.Marker       `json:"markers"`
	Notifications []models.Notification `json:"notifications"`
}

// Dashboard loads cities, properties, opportunities and statistics for the
// given criteria. Never returns an error: each failed fetch leaves its list
// empty and is reported through Notifications.
func (s *Service) Dashboard(ctx context.Context, criteria query.Criteria) Snapshot {
	snapshot := Snapshot{
		Cities:        []string{},
		Properties:    []models.Property{},
		Opportunities: []models.InvestmentOpportunity{},
		Notifications: []models.Notification{},
	}

	if err := criteria.Validate(); err != nil {
		s.logger.WithError(err).Warn("Rejected filter combination")
		snapshot.Notifications = append(snapshot.Notifications, models.Notification{
			Severity: models.SeverityWarn,
			Message:  fmt.Sprintf("Invalid filters: %v", err),
		})
		return snapshot
	}

	if cities, err := s.api.Cities(ctx); err != nil {
		snapshot.Notifications = append(snapshot.Notifications, s.failure("loading cities", err))
	} else {
		snapshot.Cities = cities
	}

	if properties, err := s.api.Properties(ctx, criteria); err != nil {
		snapshot.Notifications = append(snapshot.Notifications, s.failure("loading properties", err))
	} else {
		snapshot.Properties = properties
	}

	if opportunities, err := s.api.Opportunities(ctx, criteria); err != nil {
		snapshot.Notifications = append(snapshot.Notifications, s.failure("loading investment opportunities", err))
	} else {
		snapshot.Opportunities = opportunities
	}

	snapshot.Stats = stats.Summarize(snapshot.Properties, len(snapshot.Opportunities))
	return snapshot
}

// Map loads the mappable properties for the criteria and synthesizes the
// viewport and markers. A failed fetch yields the default viewport, no
// markers and a notification.
func (s *Service) Map(ctx context.Context, criteria query.Criteria) MapSnapshot {
	snapshot := MapSnapshot{
		Markers:       []models.Marker{},
		Notifications: []models.Notification{},
	}

	if err := criteria.Validate(); err != nil {
		s.logger.WithError(err).Warn("Rejected filter combination")
		snapshot.Notifications = append(snapshot.Notifications, models.Notification{
			Severity: models.SeverityWarn,
			Message:  fmt.Sprintf("Invalid filters: %v", err),
		})
		snapshot.Viewport = s.synth.Viewport(nil)
		return snapshot
	}

	properties, err := s.api.MapProperties(ctx, criteria)
	if err != nil {
		snapshot.Notifications = append(snapshot.Notifications, s.failure("loading properties for map", err))
		snapshot.Viewport = s.synth.Viewport(nil)
		return snapshot
	}

	snapshot.Viewport = s.synth.Viewport(properties)
	snapshot.Markers = s.synth.Markers(properties)
	return snapshot
}

// Neighborhoods wraps the upstream lookup with the same degradation
// contract as the snapshots.
func (s *Service) Neighborhoods(ctx context.Context, city string) ([]string, []models.Notification) {
	if city == "" {
		return []string{}, []models.Notification{}
	}
	neighborhoods, err := s.api.Neighborhoods(ctx, city)
	if err != nil {
		return []string{}, []models.Notification{s.failure("loading neighborhoods", err)}
	}
	return neighborhoods, []models.Notification{}
}

func (s *Service) failure(action string, err error) models.Notification {
	s.logger.WithError(err).Errorf("Error %s", action)
	return models.Notification{
		Severity: models.SeverityError,
		Message:  fmt.Sprintf("Error %s: %v", action, err),
	}
}
