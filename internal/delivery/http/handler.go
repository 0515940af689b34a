package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foodtrack/backend/internal/domain"
	"github.com/foodtrack/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	tracker    *usecase.TrackerService
	recogniser *usecase.RecognitionService
	maxTopK    int
}

// NewHandler creates a new HTTP handler
func NewHandler(tracker *usecase.TrackerService, recogniser *usecase.RecognitionService, maxTopK int) *Handler {
	if maxTopK <= 0 {
		maxTopK = 25
	}
	return &Handler{
		tracker:    tracker,
		recogniser: recogniser,
		maxTopK:    maxTopK,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "foodtrack-backend",
		"version": "1.0.0",
	})
}

// matchRequest is the body for single-query matching
type matchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"topK"`
}

// MatchFood resolves a free-text query to ranked catalog matches
func (h *Handler) MatchFood(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.TopK < 0 || req.TopK > h.maxTopK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topK out of range"})
		return
	}

	results, err := h.recogniser.Match(req.Query, req.TopK)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": req.Query, "results": results})
}

// matchBulkRequest is the body for bulk matching
type matchBulkRequest struct {
	Queries []string `json:"queries" binding:"required"`
	TopK    int      `json:"topK"`
}

// MatchFoodsBulk resolves several queries in one request. Semantics are
// identical to calling the single-query endpoint once per query.
func (h *Handler) MatchFoodsBulk(c *gin.Context) {
	var req matchBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Queries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "queries is required"})
		return
	}
	if req.TopK < 0 || req.TopK > h.maxTopK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topK out of range"})
		return
	}

	results, err := h.recogniser.MatchBulk(req.Queries, req.TopK)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// RegisterFood adds a user-defined food to the catalog and index
func (h *Handler) RegisterFood(c *gin.Context) {
	var item domain.FoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food definition"})
		return
	}

	registered, err := h.tracker.RegisterCustomFood(item)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registered)
}

// ListFoods enumerates the catalog in registration order
func (h *Handler) ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"foods": h.recogniser.Items()})
}

// logEntryRequest is the body for logging a food entry
type logEntryRequest struct {
	FoodID    string    `json:"foodId" binding:"required"`
	Quantity  float64   `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// LogEntry records a serving of a catalog food in the journal
func (h *Handler) LogEntry(c *gin.Context) {
	var req logEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodId is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1.0
	}

	item, err := h.recogniser.GetFood(req.FoodID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	entry, err := h.tracker.LogFood(item, req.Quantity, req.Timestamp)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetDailyLog returns the journal for one calendar day (YYYY-MM-DD)
func (h *Handler) GetDailyLog(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	daily := h.tracker.EntriesForDay(day)
	c.JSON(http.StatusOK, gin.H{
		"day":           daily.Day.Format("2006-01-02"),
		"entries":       daily.Entries,
		"totalCalories": daily.TotalCalories(),
		"totalMacros":   daily.TotalMacros(),
	})
}

// GetSummary returns per-day totals across the whole journal
func (h *Handler) GetSummary(c *gin.Context) {
	logs := h.tracker.DailySummary()
	summary := make([]gin.H, 0, len(logs))
	for _, daily := range logs {
		summary = append(summary, gin.H{
			"day":           daily.Day.Format("2006-01-02"),
			"entryCount":    len(daily.Entries),
			"totalCalories": daily.TotalCalories(),
			"totalMacros":   daily.TotalMacros(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"days": summary})
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
