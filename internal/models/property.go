package models

import "time"

// Property is the canonical listing entity produced by the normalizer.
// Optional upstream fields are pointers; nil means the upstream did not
// provide a usable value. A missing price is nil, never 0. Entities are
// value records and are not mutated after construction.
type Property struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	URL    *string `json:"url"`

	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Price         *float64         `json:"price"`
	PriceHistory  []map[string]any `json:"price_history,omitempty"`
	PropertyType  *string          `json:"property_type"`
	OperationType *string          `json:"operation_type"`

	Size        *float64 `json:"size"`
	Rooms       *int     `json:"rooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Floor       *int     `json:"floor"`
	HasElevator bool     `json:"has_elevator"`
	Condition   *string  `json:"condition"`
	YearBuilt   *int     `json:"year_built"`
	Features    []string `json:"features,omitempty"`
	EnergyCert  *string  `json:"energy_cert"`

	Address      *string  `json:"address"`
	Neighborhood *string  `json:"neighborhood"`
	District     *string  `json:"district"`
	City         *string  `json:"city"`
	Province     *string  `json:"province"`
	PostalCode   *string  `json:"postal_code"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	FirstDetected *time.Time `json:"first_detected"`
	LastUpdated   *time.Time `json:"last_updated"`
	IsNew         bool       `json:"is_new"`
	DaysListed    *int       `json:"days_listed"`

	PricePerSqm          *float64         `json:"price_per_sqm"`
	InvestmentScore      *float64         `json:"investment_score"`
	ComparableProperties []map[string]any `json:"comparable_properties,omitempty"`
}

// HasCoordinates reports whether the property can be placed on a map.
// A property with only one of the pair is not mappable.
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// DerivedPricePerSqm recomputes price/size from the entity's own fields.
// Returns nil unless both inputs are present and size is positive; the
// derived value must not be trusted otherwise.
func (p *Property) DerivedPricePerSqm() *float64 {
	if p.Price == nil || p.Size == nil || *p.Size <= 0 {
		return nil
	}
	v := *p.Price / *p.Size
	return &v
}

// PropertyStats holds the derived statistics block for a filtered result set.
// TotalProperties is the size of the fetched page, a lower bound on the true
// match count (the upstream API has no count endpoint).
type PropertyStats struct {
	TotalProperties    int     `json:"total_properties"`
	AveragePrice       float64 `json:"average_price"`
	AveragePricePerSqm float64 `json:"average_price_per_sqm"`
	OpportunityCount   int     `json:"opportunity_count"`
}
