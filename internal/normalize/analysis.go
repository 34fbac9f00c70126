package normalize

import "inmoscope/server/internal/models"

// Analysis normalizes the nested investment-analysis document. Sub-sections
// the upstream omits come out nil; a sub-section present with a leaf value
// where an object belongs is malformed.
func Analysis(rec Record) (models.Analysis, error) {
	var a models.Analysis

	propRec, err := optObject(rec, "property")
	if err != nil {
		return models.Analysis{}, err
	}
	if propRec != nil {
		p, err := Property(propRec)
		if err != nil {
			return models.Analysis{}, err
		}
		a.Property = &p
	}

	if a.AreaData, err = areaData(rec); err != nil {
		return models.Analysis{}, err
	}
	if a.PriceInsights, err = priceInsights(rec); err != nil {
		return models.Analysis{}, err
	}
	if a.InvestmentMetrics, err = investmentMetrics(rec); err != nil {
		return models.Analysis{}, err
	}

	similarRecs, err := optRecordList(rec, "similar_properties")
	if err != nil {
		return models.Analysis{}, err
	}
	if similarRecs != nil {
		a.SimilarProperties, err = Properties(similarRecs)
		if err != nil {
			return models.Analysis{}, err
		}
	}

	return a, nil
}

func areaData(rec Record) (*models.AreaData, error) {
	areaRec, err := optObject(rec, "area_data")
	if err != nil || areaRec == nil {
		return nil, err
	}

	fr := &reader{rec: areaRec}
	area := &models.AreaData{
		City:          fr.str("city"),
		Neighborhood:  fr.str("neighborhood"),
		PropertyCount: fr.int("property_count"),
	}
	if fr.err != nil {
		return nil, fr.err
	}

	priceRec, err := optObject(areaRec, "price_per_sqm")
	if err != nil {
		return nil, err
	}
	if priceRec != nil {
		pfr := &reader{rec: priceRec}
		area.PricePerSqm = &models.PriceBand{
			Avg:   pfr.float("avg_price_per_sqm"),
			Min:   pfr.float("min_price_per_sqm"),
			Max:   pfr.float("max_price_per_sqm"),
			Count: pfr.int("count"),
		}
		if pfr.err != nil {
			return nil, pfr.err
		}
	}

	timeRec, err := optObject(areaRec, "time_on_market")
	if err != nil {
		return nil, err
	}
	if timeRec != nil {
		tfr := &reader{rec: timeRec}
		area.TimeOnMarket = &models.TimeOnMarket{
			AvgDaysListed: tfr.float("avg_days_listed"),
			Count:         tfr.int("count"),
		}
		if tfr.err != nil {
			return nil, tfr.err
		}
	}

	typeRecs, err := optRecordList(areaRec, "property_types")
	if err != nil {
		return nil, err
	}
	for _, typeRec := range typeRecs {
		tfr := &reader{rec: typeRec}
		entry := models.PropertyTypeCount{
			Type:  tfr.str("_id"),
			Count: tfr.int("count"),
		}
		if tfr.err != nil {
			return nil, tfr.err
		}
		area.PropertyTypes = append(area.PropertyTypes, entry)
	}

	return area, nil
}

func priceInsights(rec Record) (*models.PriceInsights, error) {
	insightsRec, err := optObject(rec, "price_insights")
	if err != nil || insightsRec == nil {
		return nil, err
	}

	fr := &reader{rec: insightsRec}
	insights := &models.PriceInsights{
		PriceDifference:      fr.float("price_difference"),
		PriceDifferenceLabel: fr.str("price_difference_label"),
		PricePercentile:      fr.float("price_percentile"),
		PriceChange:          fr.float("price_change"),
		PriceChangesCount:    fr.int("price_changes_count"),
	}
	if fr.err != nil {
		return nil, fr.err
	}
	return insights, nil
}

func investmentMetrics(rec Record) (*models.InvestmentMetrics, error) {
	metricsRec, err := optObject(rec, "investment_metrics")
	if err != nil || metricsRec == nil {
		return nil, err
	}

	fr := &reader{rec: metricsRec}
	metrics := &models.InvestmentMetrics{
		InvestmentScore:       fr.float("investment_score"),
		RenovationROI:         fr.float("renovation_roi"),
		RenovationCost:        fr.float("renovation_cost"),
		EstimatedMarketValue:  fr.float("estimated_market_value"),
		PriceToValueRatio:     fr.float("price_to_value_ratio"),
		PotentialAppreciation: fr.float("potential_appreciation"),
		EstimatedMonthlyRent:  fr.float("estimated_monthly_rent"),
		EstimatedRentalYield:  fr.float("estimated_rental_yield"),
		LiquidityScore:        fr.float("liquidity_score"),
		AvgDaysOnMarket:       fr.float("avg_days_on_market"),
	}
	if fr.err != nil {
		return nil, fr.err
	}
	return metrics, nil
}
