package normalize

import (
	"time"

	"inmoscope/server/internal/models"
)

// reader walks a record field by field, remembering the first failure so the
// per-field calls stay flat. Once an error is recorded every later read is a
// no-op; the caller checks err exactly once.
type reader struct {
	rec Record
	err error
}

func (fr *reader) str(key string) *string {
	if fr.err != nil {
		return nil
	}
	v, err := optString(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) reqStr(key string) string {
	if fr.err != nil {
		return ""
	}
	v, err := reqString(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) float(key string) *float64 {
	if fr.err != nil {
		return nil
	}
	v, err := optFloat(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) int(key string) *int {
	if fr.err != nil {
		return nil
	}
	v, err := optInt(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) boolean(key string) bool {
	if fr.err != nil {
		return false
	}
	v, err := optBool(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) timestamp(key string) *time.Time {
	if fr.err != nil {
		return nil
	}
	v, err := optTime(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) strList(key string) []string {
	if fr.err != nil {
		return nil
	}
	v, err := optStringList(fr.rec, key)
	fr.err = err
	return v
}

func (fr *reader) objList(key string) []map[string]any {
	if fr.err != nil {
		return nil
	}
	v, err := optObjectList(fr.rec, key)
	fr.err = err
	return v
}

// Property normalizes one upstream property record.
func Property(rec Record) (models.Property, error) {
	fr := &reader{rec: rec}

	p := models.Property{
		ID:     fr.reqStr("id"),
		Source: fr.reqStr("source"),
		URL:    fr.str("url"),

		Title:         fr.str("title"),
		Description:   fr.str("description"),
		Price:         fr.float("price"),
		PriceHistory:  fr.objList("price_history"),
		PropertyType:  fr.str("property_type"),
		OperationType: fr.str("operation_type"),

		Size:        fr.float("size"),
		Rooms:       fr.int("rooms"),
		Bathrooms:   fr.int("bathrooms"),
		Floor:       fr.int("floor"),
		HasElevator: fr.boolean("has_elevator"),
		Condition:   fr.str("condition"),
		YearBuilt:   fr.int("year_built"),
		Features:    fr.strList("features"),
		EnergyCert:  fr.str("energy_cert"),

		Address:      fr.str("address"),
		Neighborhood: fr.str("neighborhood"),
		District:     fr.str("district"),
		City:         fr.str("city"),
		Province:     fr.str("province"),
		PostalCode:   fr.str("postal_code"),
		Latitude:     fr.float("latitude"),
		Longitude:    fr.float("longitude"),

		FirstDetected: fr.timestamp("first_detected"),
		LastUpdated:   fr.timestamp("last_updated"),
		IsNew:         fr.boolean("is_new"),
		DaysListed:    fr.int("days_listed"),

		PricePerSqm:          fr.float("price_per_sqm"),
		InvestmentScore:      fr.float("investment_score"),
		ComparableProperties: fr.objList("comparable_properties"),
	}

	if fr.err != nil {
		return models.Property{}, fr.err
	}
	return p, nil
}

// Properties normalizes a collection. All-or-nothing: one bad record fails
// the whole fetch rather than silently dropping it.
func Properties(recs []Record) ([]models.Property, error) {
	out := make([]models.Property, 0, len(recs))
	for _, rec := range recs {
		p, err := Property(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Opportunity normalizes one upstream investment-opportunity record.
func Opportunity(rec Record) (models.InvestmentOpportunity, error) {
	fr := &reader{rec: rec}

	o := models.InvestmentOpportunity{
		PropertyID: fr.reqStr("property_id"),
		Source:     fr.reqStr("source"),
		Title:      fr.str("title"),
		URL:        fr.str("url"),

		Price: fr.float("price"),
		Size:  fr.float("size"),

		City:         fr.str("city"),
		Neighborhood: fr.str("neighborhood"),

		PropertyType:  fr.str("property_type"),
		OperationType: fr.str("operation_type"),

		InvestmentScore:    fr.float("investment_score"),
		PricePerSqm:        fr.float("price_per_sqm"),
		AvgAreaPricePerSqm: fr.float("avg_area_price_per_sqm"),
		PriceDifference:    fr.float("price_difference"),
		EstimatedROI:       fr.float("estimated_roi"),
		ComparableCount:    fr.int("comparable_count"),

		Latitude:  fr.float("latitude"),
		Longitude: fr.float("longitude"),
	}

	if fr.err != nil {
		return models.InvestmentOpportunity{}, fr.err
	}
	return o, nil
}

// Opportunities normalizes a collection, all-or-nothing.
func Opportunities(recs []Record) ([]models.InvestmentOpportunity, error) {
	out := make([]models.InvestmentOpportunity, 0, len(recs))
	for _, rec := range recs {
		o, err := Opportunity(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
