package models

// Analysis is the nested investment-analysis document for a single property.
// Every sub-section is optional; the upstream omits sections it cannot
// compute for thin markets.
type Analysis struct {
	Property          *Property          `json:"property"`
	AreaData          *AreaData          `json:"area_data"`
	PriceInsights     *PriceInsights     `json:"price_insights"`
	InvestmentMetrics *InvestmentMetrics `json:"investment_metrics"`
	SimilarProperties []Property         `json:"similar_properties,omitempty"`
}

// AreaData describes the market around the analyzed property.
type AreaData struct {
	City          *string             `json:"city"`
	Neighborhood  *string             `json:"neighborhood"`
	PropertyCount *int                `json:"property_count"`
	PricePerSqm   *PriceBand          `json:"price_per_sqm"`
	TimeOnMarket  *TimeOnMarket       `json:"time_on_market"`
	PropertyTypes []PropertyTypeCount `json:"property_types,omitempty"`
}

// PriceBand is a price-per-sqm distribution summary.
type PriceBand struct {
	Avg   *float64 `json:"avg_price_per_sqm"`
	Min   *float64 `json:"min_price_per_sqm"`
	Max   *float64 `json:"max_price_per_sqm"`
	Count *int     `json:"count"`
}

// TimeOnMarket summarizes how long comparable listings stay active.
type TimeOnMarket struct {
	AvgDaysListed *float64 `json:"avg_days_listed"`
	Count         *int     `json:"count"`
}

// PropertyTypeCount is one entry of the area's type breakdown.
type PropertyTypeCount struct {
	Type  *string `json:"type"`
	Count *int    `json:"count"`
}

// PriceInsights positions the listing price within its area.
type PriceInsights struct {
	PriceDifference      *float64 `json:"price_difference"`
	PriceDifferenceLabel *string  `json:"price_difference_label"`
	PricePercentile      *float64 `json:"price_percentile"`
	PriceChange          *float64 `json:"price_change"`
	PriceChangesCount    *int     `json:"price_changes_count"`
}

// InvestmentMetrics carries the upstream-computed investment indicators.
type InvestmentMetrics struct {
	InvestmentScore       *float64 `json:"investment_score"`
	RenovationROI         *float64 `json:"renovation_roi"`
	RenovationCost        *float64 `json:"renovation_cost"`
	EstimatedMarketValue  *float64 `json:"estimated_market_value"`
	PriceToValueRatio     *float64 `json:"price_to_value_ratio"`
	PotentialAppreciation *float64 `json:"potential_appreciation"`
	EstimatedMonthlyRent  *float64 `json:"estimated_monthly_rent"`
	EstimatedRentalYield  *float64 `json:"estimated_rental_yield"`
	LiquidityScore        *float64 `json:"liquidity_score"`
	AvgDaysOnMarket       *float64 `json:"avg_days_on_market"`
}
