// Package query turns sparse filter criteria into deterministic upstream
// request parameters. Absent filters are omitted entirely, never sent as an
// empty string or zero.
package query

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidFilter marks a filter combination rejected locally, before any
// request is built.
var ErrInvalidFilter = errors.New("invalid filter combination")

var validate = validator.New()

// Endpoint selects which parameter subset applies.
type Endpoint int

const (
	EndpointListings Endpoint = iota
	EndpointMap
	EndpointOpportunities
)

// Criteria is an immutable set of optional predicates plus pagination.
// A nil field is an absent filter. Copy by value; never share a mutated
// instance across requests.
type Criteria struct {
	City          *string
	Neighborhood  *string
	PropertyType  *string
	OperationType *string
	MinPrice      *float64 `validate:"omitempty,gte=0"`
	MaxPrice      *float64 `validate:"omitempty,gte=0"`
	MinSize       *float64 `validate:"omitempty,gte=0"`
	MaxSize       *float64 `validate:"omitempty,gte=0"`
	MinRooms      *int     `validate:"omitempty,gte=0"`
	MinScore      *int     `validate:"omitempty,gte=0,lte=100"`
	Limit         int      `validate:"gte=0"`
	Skip          int      `validate:"gte=0"`
}

// Default returns the baseline criteria: sale listings with the default
// minimum investment score.
func Default(limit int) Criteria {
	operation := "sale"
	minScore := 50
	return Criteria{
		OperationType: &operation,
		MinScore:      &minScore,
		Limit:         limit,
	}
}

// Validate guards numeric ranges before a query is built. An unsatisfiable
// min>max range is reported here instead of being sent upstream.
func (c Criteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return fmt.Errorf("%w: min price %s exceeds max price %s",
			ErrInvalidFilter, formatFloat(*c.MinPrice), formatFloat(*c.MaxPrice))
	}
	if c.MinSize != nil && c.MaxSize != nil && *c.MinSize > *c.MaxSize {
		return fmt.Errorf("%w: min size %s exceeds max size %s",
			ErrInvalidFilter, formatFloat(*c.MinSize), formatFloat(*c.MaxSize))
	}
	return nil
}

// Param is one (name, value) query parameter.
type Param struct {
	Name  string
	Value string
}

// Build produces the ordered parameter list for an endpoint. Order is fixed:
// city, neighborhood, property_type, operation_type, min_price, max_price,
// min_size, max_size, min_rooms, min_score, limit, skip; the endpoint
// determines which subset applies. limit is always emitted; skip only when
// positive. Pure function, no side effects.
func Build(c Criteria, endpoint Endpoint) []Param {
	params := make([]Param, 0, 12)

	appendString := func(name string, v *string) {
		if v != nil && *v != "" {
			params = append(params, Param{name, *v})
		}
	}
	appendFloat := func(name string, v *float64) {
		if v != nil {
			params = append(params, Param{name, formatFloat(*v)})
		}
	}
	appendInt := func(name string, v *int) {
		if v != nil {
			params = append(params, Param{name, strconv.Itoa(*v)})
		}
	}

	appendString("city", c.City)
	appendString("neighborhood", c.Neighborhood)
	appendString("property_type", c.PropertyType)
	appendString("operation_type", c.OperationType)

	if endpoint == EndpointListings || endpoint == EndpointMap {
		appendFloat("min_price", c.MinPrice)
		appendFloat("max_price", c.MaxPrice)
	}
	if endpoint == EndpointListings {
		appendFloat("min_size", c.MinSize)
		appendFloat("max_size", c.MaxSize)
		appendInt("min_rooms", c.MinRooms)
	}
	if endpoint == EndpointOpportunities {
		appendInt("min_score", c.MinScore)
	}

	params = append(params, Param{"limit", strconv.Itoa(c.Limit)})
	if endpoint != EndpointMap && c.Skip > 0 {
		params = append(params, Param{"skip", strconv.Itoa(c.Skip)})
	}

	return params
}

// formatFloat serializes in locale-independent decimal form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
