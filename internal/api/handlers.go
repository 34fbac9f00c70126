package api

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"inmoscope/server/config"
	"inmoscope/server/internal/models"
	"inmoscope/server/internal/query"
	"inmoscope/server/internal/upstream"
	"inmoscope/server/internal/view"
)

// Client is the full upstream surface the handlers need: the list operations
// consumed through the view layer plus the two detail lookups.
type Client interface {
	view.API
	PropertyByID(ctx context.Context, id, source string) (*models.Property, error)
	Analysis(ctx context.Context, id, source string) (*models.Analysis, error)
}

type Handler struct {
	view   *view.Service
	api    Client
	cfg    *config.Config
	logger *logrus.Logger
}

// FilterRequest carries the optional filter parameters accepted by the list
// endpoints. Empty strings and missing numbers mean "no filter".
type FilterRequest struct {
	City          string   `form:"city"`
	Neighborhood  string   `form:"neighborhood"`
	PropertyType  string   `form:"property_type"`
	OperationType string   `form:"operation_type"`
	MinPrice      *float64 `form:"min_price"`
	MaxPrice      *float64 `form:"max_price"`
	MinSize       *float64 `form:"min_size"`
	MaxSize       *float64 `form:"max_size"`
	MinRooms      *int     `form:"min_rooms"`
	MinScore      *int     `form:"min_score"`
	Limit         *int     `form:"limit"`
	Skip          int      `form:"skip"`
}

func NewHandler(v *view.Service, client Client, cfg *config.Config, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		view:   v,
		api:    client,
		cfg:    cfg,
		logger: logger,
	}
}

// criteria converts the bound request into filter criteria, applying the
// configured defaults for operation type, score and page size.
func (h *Handler) criteria(req FilterRequest, defaultLimit int) query.Criteria {
	c := query.Criteria{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		MinSize:  req.MinSize,
		MaxSize:  req.MaxSize,
		MinRooms: req.MinRooms,
		MinScore: req.MinScore,
		Limit:    defaultLimit,
		Skip:     req.Skip,
	}

	setString := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	setString(&c.City, req.City)
	setString(&c.Neighborhood, req.Neighborhood)
	setString(&c.PropertyType, req.PropertyType)

	operation := req.OperationType
	if operation == "" {
		operation = "sale"
	}
	c.OperationType = &operation

	if c.MinScore == nil {
		minScore := h.cfg.Listing.DefaultMinScore
		c.MinScore = &minScore
	}
	if req.Limit != nil && *req.Limit > 0 {
		c.Limit = *req.Limit
	}

	return c
}

func (h *Handler) GetProperties(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	snapshot := h.view.Dashboard(c.Request.Context(), h.criteria(req, h.cfg.Listing.PageLimit))
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) GetMap(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	snapshot := h.view.Map(c.Request.Context(), h.criteria(req, h.cfg.Listing.MapLimit))
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) GetOpportunities(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	criteria := h.criteria(req, h.cfg.Listing.OpportunityLimit)
	if err := criteria.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opportunities, err := h.api.Opportunities(c.Request.Context(), criteria)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get investment opportunities")
		c.JSON(http.StatusOK, gin.H{
			"opportunities": []models.InvestmentOpportunity{},
			"notifications": []models.Notification{{
				Severity: models.SeverityError,
				Message:  "Error loading investment opportunities",
			}},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"opportunities": opportunities,
		"notifications": []models.Notification{},
	})
}

func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.api.Cities(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get cities")
		c.JSON(http.StatusOK, gin.H{
			"cities": []string{},
			"notifications": []models.Notification{{
				Severity: models.SeverityError,
				Message:  "Error loading cities",
			}},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cities":        cities,
		"notifications": []models.Notification{},
	})
}

func (h *Handler) GetNeighborhoods(c *gin.Context) {
	city := c.Query("city")
	neighborhoods, notifications := h.view.Neighborhoods(c.Request.Context(), city)

	c.JSON(http.StatusOK, gin.H{
		"neighborhoods": neighborhoods,
		"notifications": notifications,
	})
}

func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	source := c.Query("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}

	property, err := h.api.PropertyByID(c.Request.Context(), id, source)
	if err != nil {
		h.detailError(c, err, "Failed to get property")
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	source := c.Query("source")
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}

	analysis, err := h.api.Analysis(c.Request.Context(), id, source)
	if err != nil {
		h.detailError(c, err, "Failed to get investment analysis")
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// detailError maps upstream failures for the detail endpoints, which have no
// empty-collection fallback to degrade to.
func (h *Handler) detailError(c *gin.Context, err error, message string) {
	h.logger.WithError(err).Error(message)
	if errors.Is(err, upstream.ErrMalformed) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream returned a malformed payload"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream unavailable"})
}
