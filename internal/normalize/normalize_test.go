package normalize

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mirrors how the upstream client reads payloads.
func decode(t *testing.T, raw string) Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var rec Record
	require.NoError(t, dec.Decode(&rec))
	return rec
}

func TestPropertyNullAndMissingAreEquivalent(t *testing.T) {
	withNull := decode(t, `{"id": "p1", "source": "idealista", "price": null}`)
	withoutKey := decode(t, `{"id": "p1", "source": "idealista"}`)

	a, err := Property(withNull)
	require.NoError(t, err)
	b, err := Property(withoutKey)
	require.NoError(t, err)

	assert.Nil(t, a.Price, "explicit null price must be absent, not 0")
	assert.Equal(t, a, b, "null-valued and missing keys normalize identically")
}

func TestPropertyFullRecord(t *testing.T) {
	rec := decode(t, `{
		"id": "abc123",
		"source": "idealista",
		"url": "https://example.com/abc123",
		"title": "Piso en Chamberí",
		"price": 325000,
		"property_type": "flat",
		"operation_type": "sale",
		"size": 85.5,
		"rooms": 3,
		"bathrooms": 2,
		"floor": 4,
		"has_elevator": true,
		"condition": "good",
		"year_built": 1962,
		"features": ["terrace", "air conditioning"],
		"energy_cert": "E",
		"address": "Calle de Santa Engracia",
		"neighborhood": "Chamberí",
		"district": "Centro",
		"city": "Madrid",
		"province": "Madrid",
		"postal_code": "28010",
		"latitude": 40.433,
		"longitude": -3.697,
		"first_detected": "2024-11-02T09:30:00Z",
		"last_updated": "2024-11-20 18:00:00",
		"is_new": false,
		"days_listed": 18,
		"price_per_sqm": 3801.17,
		"investment_score": 72.4,
		"price_history": [{"price": 340000, "date": "2024-11-02"}],
		"comparable_properties": [{"id": "xyz", "price": 310000}]
	}`)

	p, err := Property(rec)
	require.NoError(t, err)

	assert.Equal(t, "abc123", p.ID)
	assert.Equal(t, "idealista", p.Source)
	assert.Equal(t, "Piso en Chamberí", *p.Title)
	assert.Equal(t, 325000.0, *p.Price)
	assert.Equal(t, 85.5, *p.Size)
	assert.Equal(t, 3, *p.Rooms)
	assert.True(t, p.HasElevator)
	assert.Equal(t, 1962, *p.YearBuilt)
	assert.Equal(t, []string{"terrace", "air conditioning"}, p.Features)
	assert.Equal(t, 40.433, *p.Latitude)
	assert.Equal(t, -3.697, *p.Longitude)
	assert.Equal(t, time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC), *p.FirstDetected)
	require.NotNil(t, p.LastUpdated)
	assert.Equal(t, 2024, p.LastUpdated.Year())
	assert.Equal(t, 72.4, *p.InvestmentScore)
	assert.Len(t, p.PriceHistory, 1)
	assert.Len(t, p.ComparableProperties, 1)
}

func TestPropertyNumericForms(t *testing.T) {
	// Integer-form floats and float-form ints both normalize; fractional
	// room counts truncate toward zero.
	rec := decode(t, `{"id": "p1", "source": "fotocasa", "price": 200000, "size": 90, "rooms": 2.9}`)

	p, err := Property(rec)
	require.NoError(t, err)

	assert.Equal(t, 200000.0, *p.Price)
	assert.Equal(t, 90.0, *p.Size)
	assert.Equal(t, 2, *p.Rooms)
}

func TestPropertyTypeMismatches(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"String price", `{"id": "p1", "source": "s", "price": "cheap"}`, "price"},
		{"Object where number expected", `{"id": "p1", "source": "s", "rooms": {"n": 3}}`, "rooms"},
		{"Number where string expected", `{"id": "p1", "source": "s", "city": 5}`, "city"},
		{"String elevator flag", `{"id": "p1", "source": "s", "has_elevator": "yes"}`, "has_elevator"},
		{"Garbage timestamp", `{"id": "p1", "source": "s", "first_detected": "not a date"}`, "first_detected"},
		{"Leaf where array expected", `{"id": "p1", "source": "s", "features": "terrace"}`, "features"},
		{"Missing identity", `{"source": "s"}`, "id"},
		{"Null identity", `{"id": null, "source": "s"}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Property(decode(t, tt.raw))
			var normErr *Error
			require.ErrorAs(t, err, &normErr)
			assert.Equal(t, tt.field, normErr.Field)
			assert.Contains(t, err.Error(), "malformed upstream payload")
		})
	}
}

func TestPropertyBooleanQuirk(t *testing.T) {
	// Present-but-null booleans default to false; they are the only fields
	// with a non-absent default.
	rec := decode(t, `{"id": "p1", "source": "s", "has_elevator": null, "is_new": null}`)

	p, err := Property(rec)
	require.NoError(t, err)

	assert.False(t, p.HasElevator)
	assert.False(t, p.IsNew)
}

func TestPropertiesAllOrNothing(t *testing.T) {
	good := decode(t, `{"id": "p1", "source": "s"}`)
	bad := decode(t, `{"id": "p2", "source": "s", "price": "broken"}`)

	out, err := Properties([]Record{good, bad})

	assert.Error(t, err)
	assert.Nil(t, out, "a single bad record fails the whole fetch")
}

func TestOpportunity(t *testing.T) {
	rec := decode(t, `{
		"property_id": "abc123",
		"source": "idealista",
		"title": "Piso en Lavapiés",
		"price": 180000,
		"size": 60,
		"city": "Madrid",
		"neighborhood": "Lavapiés",
		"investment_score": 81,
		"price_per_sqm": 3000,
		"avg_area_price_per_sqm": 3600,
		"price_difference": 16.67,
		"estimated_roi": 9.2,
		"comparable_count": 14,
		"latitude": 40.408,
		"longitude": -3.702
	}`)

	o, err := Opportunity(rec)
	require.NoError(t, err)

	assert.Equal(t, "abc123", o.PropertyID)
	assert.Equal(t, "idealista", o.Source)
	assert.Equal(t, 81.0, *o.InvestmentScore)
	assert.Equal(t, 16.67, *o.PriceDifference)
	assert.Equal(t, 14, *o.ComparableCount)
	assert.True(t, o.HasCoordinates())
}

func TestOpportunityMissingIdentity(t *testing.T) {
	_, err := Opportunity(decode(t, `{"source": "idealista"}`))
	var normErr *Error
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "property_id", normErr.Field)
}

func TestAnalysis(t *testing.T) {
	rec := decode(t, `{
		"property": {"id": "p1", "source": "idealista", "price": 250000},
		"area_data": {
			"city": "Madrid",
			"neighborhood": "Chamberí",
			"property_count": 134,
			"price_per_sqm": {"avg_price_per_sqm": 4100, "min_price_per_sqm": 2900, "max_price_per_sqm": 5600, "count": 120},
			"time_on_market": {"avg_days_listed": 44.5, "count": 98},
			"property_types": [{"_id": "flat", "count": 110}, {"_id": "penthouse", "count": 10}]
		},
		"price_insights": {
			"price_difference": 12.5,
			"price_difference_label": "below average",
			"price_percentile": 30,
			"price_change": -5000,
			"price_changes_count": 2
		},
		"investment_metrics": {
			"investment_score": 76,
			"renovation_roi": 14.2,
			"estimated_monthly_rent": 1350,
			"liquidity_score": 68
		},
		"similar_properties": [{"id": "p2", "source": "idealista", "price": 240000}]
	}`)

	a, err := Analysis(rec)
	require.NoError(t, err)

	require.NotNil(t, a.Property)
	assert.Equal(t, "p1", a.Property.ID)

	require.NotNil(t, a.AreaData)
	assert.Equal(t, 134, *a.AreaData.PropertyCount)
	require.NotNil(t, a.AreaData.PricePerSqm)
	assert.Equal(t, 4100.0, *a.AreaData.PricePerSqm.Avg)
	require.Len(t, a.AreaData.PropertyTypes, 2)
	assert.Equal(t, "flat", *a.AreaData.PropertyTypes[0].Type)

	require.NotNil(t, a.PriceInsights)
	assert.Equal(t, 12.5, *a.PriceInsights.PriceDifference)
	assert.Equal(t, "below average", *a.PriceInsights.PriceDifferenceLabel)

	require.NotNil(t, a.InvestmentMetrics)
	assert.Equal(t, 76.0, *a.InvestmentMetrics.InvestmentScore)
	assert.Nil(t, a.InvestmentMetrics.RenovationCost)

	require.Len(t, a.SimilarProperties, 1)
	assert.Equal(t, "p2", a.SimilarProperties[0].ID)
}

func TestAnalysisMissingSections(t *testing.T) {
	a, err := Analysis(decode(t, `{"property": {"id": "p1", "source": "s"}}`))
	require.NoError(t, err)

	assert.NotNil(t, a.Property)
	assert.Nil(t, a.AreaData)
	assert.Nil(t, a.PriceInsights)
	assert.Nil(t, a.InvestmentMetrics)
	assert.Nil(t, a.SimilarProperties)
}

func TestAnalysisLeafWhereObjectExpected(t *testing.T) {
	_, err := Analysis(decode(t, `{"area_data": "none"}`))
	var normErr *Error
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "area_data", normErr.Field)
}
