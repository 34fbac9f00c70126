package view

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inmoscope/server/internal/mapview"
	"inmoscope/server/internal/models"
	"inmoscope/server/internal/query"
	"inmoscope/server/internal/upstream"
)

// MockAPI is a mock implementation of the API interface.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAPI) Neighborhoods(ctx context.Context, city string) ([]string, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAPI) Properties(ctx context.Context, criteria query.Criteria) ([]models.Property, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockAPI) MapProperties(ctx context.Context, criteria query.Criteria) ([]models.Property, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockAPI) Opportunities(ctx context.Context, criteria query.Criteria) ([]models.InvestmentOpportunity, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]models.InvestmentOpportunity), args.Error(1)
}

func f(v float64) *float64 { return &v }

func newTestService(api API) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(api, mapview.NewSynthesizer(40.416775, -3.703790, 7), logger)
}

func TestDashboard(t *testing.T) {
	api := new(MockAPI)
	criteria := query.Default(100)

	api.On("Cities", mock.Anything).Return([]string{"Madrid", "Barcelona"}, nil)
	api.On("Properties", mock.Anything, criteria).Return([]models.Property{
		{ID: "p1", Source: "idealista", Price: f(200000), PricePerSqm: f(2500)},
		{ID: "p2", Source: "idealista", Price: f(400000), PricePerSqm: f(3500)},
	}, nil)
	api.On("Opportunities", mock.Anything, criteria).Return([]models.InvestmentOpportunity{
		{PropertyID: "p1", Source: "idealista", InvestmentScore: f(78)},
	}, nil)

	snapshot := newTestService(api).Dashboard(context.Background(), criteria)

	assert.Equal(t, []string{"Madrid", "Barcelona"}, snapshot.Cities)
	assert.Len(t, snapshot.Properties, 2)
	assert.Len(t, snapshot.Opportunities, 1)
	assert.Equal(t, 2, snapshot.Stats.TotalProperties)
	assert.Equal(t, 300000.0, snapshot.Stats.AveragePrice)
	assert.Equal(t, 3000.0, snapshot.Stats.AveragePricePerSqm)
	assert.Equal(t, 1, snapshot.Stats.OpportunityCount)
	assert.Empty(t, snapshot.Notifications)
	api.AssertExpectations(t)
}

func TestDashboardUpstreamFailureDegrades(t *testing.T) {
	api := new(MockAPI)
	criteria := query.Default(100)

	api.On("Cities", mock.Anything).Return([]string{"Madrid"}, nil)
	api.On("Properties", mock.Anything, criteria).Return([]models.Property(nil), upstream.ErrUnavailable)
	api.On("Opportunities", mock.Anything, criteria).Return([]models.InvestmentOpportunity{}, nil)

	snapshot := newTestService(api).Dashboard(context.Background(), criteria)

	// The failed list is empty, the rest of the view stays usable.
	assert.Empty(t, snapshot.Properties)
	assert.Equal(t, []string{"Madrid"}, snapshot.Cities)
	assert.Zero(t, snapshot.Stats.TotalProperties)
	assert.Zero(t, snapshot.Stats.AveragePrice)
	require.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, models.SeverityError, snapshot.Notifications[0].Severity)
	assert.Contains(t, snapshot.Notifications[0].Message, "properties")
}

func TestDashboardInvalidFilters(t *testing.T) {
	api := new(MockAPI)
	criteria := query.Default(100)
	criteria.MinPrice = f(300000)
	criteria.MaxPrice = f(100000)

	snapshot := newTestService(api).Dashboard(context.Background(), criteria)

	// Nothing is fetched for an unsatisfiable filter.
	api.AssertNotCalled(t, "Properties", mock.Anything, mock.Anything)
	assert.Empty(t, snapshot.Properties)
	require.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, models.SeverityWarn, snapshot.Notifications[0].Severity)
}

func TestMap(t *testing.T) {
	api := new(MockAPI)
	criteria := query.Default(1000)

	api.On("MapProperties", mock.Anything, criteria).Return([]models.Property{
		{ID: "p1", Source: "idealista", Latitude: f(40.0), Longitude: f(-3.0), InvestmentScore: f(80)},
		{ID: "p2", Source: "idealista", Latitude: f(41.0), Longitude: f(-4.0)},
		{ID: "p3", Source: "fotocasa"},
	}, nil)

	snapshot := newTestService(api).Map(context.Background(), criteria)

	assert.Equal(t, 40.5, snapshot.Viewport.CenterLatitude)
	assert.Equal(t, -3.5, snapshot.Viewport.CenterLongitude)
	require.Len(t, snapshot.Markers, 2)
	assert.Equal(t, models.TierHigh, snapshot.Markers[0].Tier)
	assert.Equal(t, models.TierUnclassified, snapshot.Markers[1].Tier)
	assert.Empty(t, snapshot.Notifications)
}

func TestMapUpstreamFailureFallsBackToDefault(t *testing.T) {
	api := new(MockAPI)
	criteria := query.Default(1000)

	api.On("MapProperties", mock.Anything, criteria).Return([]models.Property(nil), upstream.ErrUnavailable)

	snapshot := newTestService(api).Map(context.Background(), criteria)

	assert.Equal(t, 40.416775, snapshot.Viewport.CenterLatitude)
	assert.Equal(t, -3.703790, snapshot.Viewport.CenterLongitude)
	assert.Equal(t, 7, snapshot.Viewport.Zoom)
	assert.Empty(t, snapshot.Markers)
	require.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, models.SeverityError, snapshot.Notifications[0].Severity)
}

func TestNeighborhoods(t *testing.T) {
	api := new(MockAPI)
	api.On("Neighborhoods", mock.Anything, "Madrid").Return([]string{"Chamberí"}, nil)

	neighborhoods, notifications := newTestService(api).Neighborhoods(context.Background(), "Madrid")

	assert.Equal(t, []string{"Chamberí"}, neighborhoods)
	assert.Empty(t, notifications)
}

func TestNeighborhoodsEmptyCity(t *testing.T) {
	api := new(MockAPI)

	neighborhoods, notifications := newTestService(api).Neighborhoods(context.Background(), "")

	api.AssertNotCalled(t, "Neighborhoods", mock.Anything, mock.Anything)
	assert.Empty(t, neighborhoods)
	assert.Empty(t, notifications)
}
