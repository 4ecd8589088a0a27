package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradelink/backend/internal/domain"
	"github.com/tradelink/backend/internal/metrics"
	"github.com/tradelink/backend/internal/usecase"
)

// Matcher is the slice of the match service the handlers depend on.
type Matcher interface {
	Rank(ctx context.Context, query domain.Item, queryOrg domain.Organization, candidates []domain.Candidate, radiusKm float64, dir usecase.Direction) []domain.MatchResult
	Describe() string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher       Matcher
	defaultRadius float64
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher Matcher, defaultRadiusKm float64) *Handler {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 50.0
	}
	return &Handler{
		matcher:       matcher,
		defaultRadius: defaultRadiusKm,
	}
}

// candidateBody is one counterpart item plus its owning organization.
type candidateBody struct {
	Item domain.Item         `json:"item" binding:"required"`
	Org  domain.Organization `json:"org" binding:"required"`
}

// matchRequest is the shared request shape for both match directions: the
// query item, its organization, a search radius and the candidate pool.
type matchRequest struct {
	Item         domain.Item         `json:"item" binding:"required"`
	Org          domain.Organization `json:"org" binding:"required"`
	SearchRadius float64             `json:"search_radius"`
	Candidates   []candidateBody     `json:"candidates"`
}

// matchResponse carries scored, ranked results back to the caller.
type matchResponse struct {
	TotalResults int                  `json:"total_results"`
	Results      []domain.MatchResult `json:"results"`
	ComputedAt   string               `json:"computed_at"`
}

// Root returns service info
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":  "tradelink-matching",
		"version":  "1.0.0",
		"status":   "running",
		"matching": h.matcher.Describe(),
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "tradelink-matching",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MatchSupplyToDemands ranks demand candidates for a supply posting
func (h *Handler) MatchSupplyToDemands(c *gin.Context) {
	h.match(c, usecase.SupplyToDemand)
}

// MatchDemandToSupplies ranks supply candidates for a demand posting
func (h *Handler) MatchDemandToSupplies(c *gin.Context) {
	h.match(c, usecase.DemandToSupply)
}

func (h *Handler) match(c *gin.Context, dir usecase.Direction) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_name is required"})
		return
	}

	radius := req.SearchRadius
	if radius <= 0 {
		radius = h.defaultRadius
	}

	candidates := make([]domain.Candidate, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		candidates = append(candidates, domain.Candidate{Item: cand.Item, Org: cand.Org})
	}

	metrics.MatchRequests.WithLabelValues(string(dir)).Inc()

	results := h.matcher.Rank(c.Request.Context(), req.Item, req.Org, candidates, radius, dir)

	c.JSON(http.StatusOK, matchResponse{
		TotalResults: len(results),
		Results:      results,
		ComputedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
