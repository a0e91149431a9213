package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cartcompare/backend/internal/domain"
	"github.com/cartcompare/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sessions    *usecase.SessionService
	comparisons *usecase.ComparisonService
	catalog     domain.CatalogRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(sessions *usecase.SessionService, comparisons *usecase.ComparisonService, catalog domain.CatalogRepository) *Handler {
	return &Handler{
		sessions:    sessions,
		comparisons: comparisons,
		catalog:     catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	products := 0
	if h.catalog != nil {
		products = h.catalog.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "cartcompare-backend",
		"version":  "1.0.0",
		"products": products,
	})
}

// ListStores returns the loaded stores with their product counts, in the
// order the catalogs were loaded.
func (h *Handler) ListStores(c *gin.Context) {
	stores := make([]gin.H, 0)
	for _, name := range h.catalog.Stores() {
		stores = append(stores, gin.H{
			"name":     name,
			"products": len(h.catalog.ByStore(name)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

type suggestRequest struct {
	Term  string `json:"term" binding:"required"`
	Store string `json:"store" binding:"required"`
	Limit int    `json:"limit"`
}

// SuggestProducts returns the best matches for a term within one store, used
// by the selection step so the user can pin a concrete product per list line.
func (h *Handler) SuggestProducts(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.storeExists(req.Store) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrUnknownStore.Error(), "store": req.Store})
		return
	}

	products := h.comparisons.FindInStore(req.Term, req.Store, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"term":     req.Term,
		"store":    req.Store,
		"products": products,
	})
}

type searchRequest struct {
	Term string `json:"term" binding:"required"`
}

// SearchComparisons runs a full cross-store comparison for one search term.
func (h *Handler) SearchComparisons(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparisons := h.comparisons.CompareAll(req.Term)
	c.JSON(http.StatusOK, gin.H{
		"searchTerm":  req.Term,
		"comparisons": comparisons,
		"count":       len(comparisons),
	})
}

type analyzeRequest struct {
	HomeStore  string                     `json:"homeStore" binding:"required"`
	Items      []string                   `json:"items" binding:"required"`
	Selections []*usecase.SelectedProduct `json:"selections"`
}

// AnalyzeShoppingList compares a whole shopping list against every other
// store and returns per-item results plus the session summary.
func (h *Handler) AnalyzeShoppingList(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, summary, err := h.sessions.AnalyzeList(c.Request.Context(), &usecase.AnalyzeRequest{
		HomeStore:  req.HomeStore,
		Items:      req.Items,
		Selections: req.Selections,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"summary": summary,
	})
}

func (h *Handler) storeExists(store string) bool {
	for _, name := range h.catalog.Stores() {
		if name == store {
			return true
		}
	}
	return false
}
