// Package upstream is the read-only client for the listings API. It fetches
// JSON collections, pushes every record through the normalizer and reports
// failures through a small taxonomy: ErrUnavailable for network/non-2xx
// problems, ErrMalformed for payloads that cannot be normalized. Neither is
// retried here; callers degrade to empty result sets.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"inmoscope/server/internal/models"
	"inmoscope/server/internal/normalize"
	"inmoscope/server/internal/query"
)

var (
	// ErrUnavailable marks a network failure or non-2xx response.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrMalformed marks a response body that cannot be normalized.
	ErrMalformed = errors.New("malformed upstream payload")
)

// Client talks to the upstream listings API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8000/api".
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Cities lists all known cities.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := c.getJSON(ctx, "/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Neighborhoods lists the neighborhoods of a city.
func (c *Client) Neighborhoods(ctx context.Context, city string) ([]string, error) {
	params := []query.Param{{Name: "city", Value: city}}
	var neighborhoods []string
	if err := c.getJSON(ctx, "/neighborhoods", params, &neighborhoods); err != nil {
		return nil, err
	}
	return neighborhoods, nil
}

// Properties runs a listing search.
func (c *Client) Properties(ctx context.Context, criteria query.Criteria) ([]models.Property, error) {
	recs, err := c.getRecords(ctx, "/properties", query.Build(criteria, query.EndpointListings))
	if err != nil {
		return nil, err
	}
	properties, err := normalize.Properties(recs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return properties, nil
}

// MapProperties runs a map search, whose results usually carry coordinates.
func (c *Client) MapProperties(ctx context.Context, criteria query.Criteria) ([]models.Property, error) {
	recs, err := c.getRecords(ctx, "/properties/map", query.Build(criteria, query.EndpointMap))
	if err != nil {
		return nil, err
	}
	properties, err := normalize.Properties(recs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return properties, nil
}

// PropertyByID fetches one property detail. The (id, source) pair is the
// natural key; the same id may exist under several sources.
func (c *Client) PropertyByID(ctx context.Context, id, source string) (*models.Property, error) {
	params := []query.Param{{Name: "source", Value: source}}
	rec, err := c.getRecord(ctx, "/properties/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}
	property, err := normalize.Property(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &property, nil
}

// Opportunities runs an investment-opportunity search.
func (c *Client) Opportunities(ctx context.Context, criteria query.Criteria) ([]models.InvestmentOpportunity, error) {
	recs, err := c.getRecords(ctx, "/investment/opportunities", query.Build(criteria, query.EndpointOpportunities))
	if err != nil {
		return nil, err
	}
	opportunities, err := normalize.Opportunities(recs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return opportunities, nil
}

// Analysis fetches the nested investment analysis for one property.
func (c *Client) Analysis(ctx context.Context, id, source string) (*models.Analysis, error) {
	params := []query.Param{{Name: "source", Value: source}}
	rec, err := c.getRecord(ctx, "/investment/analysis/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}
	analysis, err := normalize.Analysis(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &analysis, nil
}

func (c *Client) getRecords(ctx context.Context, path string, params []query.Param) ([]normalize.Record, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()
	var recs []normalize.Record
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return recs, nil
}

func (c *Client) getRecord(ctx context.Context, path string, params []query.Param) (normalize.Record, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()
	var rec normalize.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return rec, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params []query.Param, out any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params []query.Param) (io.ReadCloser, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		// Keep the builder's documented parameter order on the wire;
		// url.Values would re-sort it.
		var qs strings.Builder
		for i, p := range params {
			if i > 0 {
				qs.WriteByte('&')
			}
			qs.WriteString(url.QueryEscape(p.Name))
			qs.WriteByte('=')
			qs.WriteString(url.QueryEscape(p.Value))
		}
		endpoint += "?" + qs.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Error("Upstream request failed")
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Error("Upstream returned non-200 status")
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, path, resp.StatusCode)
	}

	return resp.Body, nil
}
