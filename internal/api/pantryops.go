package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/ai"
	"larder/internal/models"
	"larder/internal/pantry"
)

// GetDeductionCandidates proposes per-ingredient deductions for a saved
// recipe. Nothing is mutated until the user confirms via ApplyDeductions.
func (s *Server) GetDeductionCandidates(c *gin.Context) {
	userID := currentUserID(c)

	recipeID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients, err := s.store.RecipeIngredients(userID, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ingredients == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	inventory, err := s.store.Inventory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	candidates := s.planner.BuildCandidates(ingredients, inventory)
	c.JSON(http.StatusOK, gin.H{"deductions": candidates})
}

// ApplyDeductions commits user-confirmed deductions after cooking
func (s *Server) ApplyDeductions(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Deductions []pantry.DeductionRequest `json:"deductions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.planner.ApplyDeductions(userID, req.Deductions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.metrics != nil {
		s.metrics.RecordDeductions(result.UpdatedCount, result.DeletedCount)
	}
	s.monitor.IncrementMetric("deductions_applied", result.UpdatedCount+result.DeletedCount)
	s.hub.BroadcastActivity("pantry_deducted", gin.H{
		"updated": result.UpdatedCount,
		"deleted": result.DeletedCount,
	})

	c.JSON(http.StatusOK, result)
}

type scanBillRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

// ScanBill sends a grocery bill photo to the model and returns the
// extracted line items for user review. Nothing is persisted here.
func (s *Server) ScanBill(c *gin.Context) {
	var req scanBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories := make([]string, 0, len(models.AllCategories()))
	for _, cat := range models.AllCategories() {
		categories = append(categories, string(cat))
	}
	prompt := ai.BillPrompt(categories, time.Now())

	start := time.Now()
	raw, err := s.generator.GenerateWithImage(c.Request.Context(), prompt, req.Image, req.MimeType)
	s.recordModelCall("bill_scan", start, err)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	items, err := ai.ParseBillItems(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not extract items from bill: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SaveBillItems folds reviewed bill items into the pantry
func (s *Server) SaveBillItems(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Items []ai.BillItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scanned := make([]pantry.ScannedItem, 0, len(req.Items))
	for _, item := range req.Items {
		scanned = append(scanned, pantry.ScannedItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Expiry:   item.Expiry,
			MfgDate:  item.MfgDate,
			Category: item.Category,
		})
	}

	result := s.resolver.SaveItems(userID, scanned)

	if s.metrics != nil {
		s.metrics.RecordBillItems(result.Merged, result.Created)
	}
	s.monitor.IncrementMetric("bill_items_saved", result.Processed)
	s.hub.BroadcastActivity("bill_saved", gin.H{
		"processed": result.Processed,
		"merged":    result.Merged,
		"created":   result.Created,
	})

	c.JSON(http.StatusOK, result)
}

// recordModelCall feeds both the monitor and the Prometheus collectors
func (s *Server) recordModelCall(feature string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.monitor.RecordModelCall(feature, elapsed, err)
	if s.metrics != nil {
		s.metrics.RecordModelCall(feature, elapsed.Seconds(), err)
	}
}
