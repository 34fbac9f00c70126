package models

// InvestmentOpportunity is a narrowed, investment-focused projection of a
// property record. It is a distinct entity because the opportunities endpoint
// returns a smaller shape than the full property detail. Identity is the
// (PropertyID, Source) pair.
type InvestmentOpportunity struct {
	PropertyID string  `json:"property_id"`
	Source     string  `json:"source"`
	Title      *string `json:"title"`
	URL        *string `json:"url"`

	Price *float64 `json:"price"`
	Size  *float64 `json:"size"`

	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`

	PropertyType  *string `json:"property_type"`
	OperationType *string `json:"operation_type"`

	InvestmentScore    *float64 `json:"investment_score"`
	PricePerSqm        *float64 `json:"price_per_sqm"`
	AvgAreaPricePerSqm *float64 `json:"avg_area_price_per_sqm"`
	// Percentage difference vs. the area average. Positive means the listing
	// is priced below the average; the convention is intentional.
	PriceDifference *float64 `json:"price_difference"`
	EstimatedROI    *float64 `json:"estimated_roi"`
	ComparableCount *int     `json:"comparable_count"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HasCoordinates reports whether the opportunity can be placed on a map.
func (o *InvestmentOpportunity) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}
