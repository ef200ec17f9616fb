package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/models"
	"larder/internal/pantry"
)

type groceryRequest struct {
	Name       string     `json:"name" binding:"required"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	Unit       string     `json:"unit" binding:"required"`
	Category   string     `json:"category"`
	ExpiryDate time.Time  `json:"expiry_date" binding:"required"`
	MfgDate    *time.Time `json:"mfg_date"`
}

// ListGroceries returns the user's pantry ordered by expiry date, together
// with the expired / expiring-soon partitions for warning banners.
func (s *Server) ListGroceries(c *gin.Context) {
	userID := currentUserID(c)

	inventory, err := s.store.Inventory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	warnings := pantry.CheckExpiry(inventory)
	if s.metrics != nil {
		s.metrics.RecordExpiryCounts(warnings.ExpiredCount(), warnings.ExpiringSoonCount())
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    inventory,
		"warnings": warnings,
	})
}

// SearchGroceries filters the pantry by a name or category substring
func (s *Server) SearchGroceries(c *gin.Context) {
	userID := currentUserID(c)

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' required"})
		return
	}

	items, err := s.store.SearchInventory(userID, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateGrocery adds a pantry item
func (s *Server) CreateGrocery(c *gin.Context) {
	userID := currentUserID(c)

	var req groceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = string(models.CategoryOthers)
	}

	item := models.Grocery{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Category:   category,
		ExpiryDate: req.ExpiryDate,
		MfgDate:    req.MfgDate,
		UserID:     userID,
	}
	if err := s.store.CreateItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.hub.BroadcastActivity("item_added", gin.H{"name": item.Name, "quantity": item.Quantity, "unit": item.Unit})

	c.JSON(http.StatusCreated, item)
}

// UpdateGrocery edits an existing pantry item
func (s *Server) UpdateGrocery(c *gin.Context) {
	userID := currentUserID(c)

	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.store.InventoryItem(userID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	var req groceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	if req.Category != "" {
		item.Category = req.Category
	}
	item.ExpiryDate = req.ExpiryDate
	item.MfgDate = req.MfgDate

	if err := s.store.UpdateItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteGrocery removes a pantry item
func (s *Server) DeleteGrocery(c *gin.Context) {
	userID := currentUserID(c)

	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.store.InventoryItem(userID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	if err := s.store.DeleteItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// GetExpiryWarnings returns only the expired / expiring-soon partitions
func (s *Server) GetExpiryWarnings(c *gin.Context) {
	userID := currentUserID(c)

	inventory, err := s.store.Inventory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pantry.CheckExpiry(inventory))
}

// GetShoppingList returns the user's shopping list
func (s *Server) GetShoppingList(c *gin.Context) {
	userID := currentUserID(c)

	items, err := s.store.ShoppingList(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddToShoppingList adds a grocery to the shopping list, incrementing the
// requested quantity when it is already listed.
func (s *Server) AddToShoppingList(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		GroceryID uint `json:"grocery_id" binding:"required"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := s.store.AddShoppingItem(userID, req.GroceryID, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "added to shopping list"})
}

// RemoveFromShoppingList removes a grocery from the shopping list
func (s *Server) RemoveFromShoppingList(c *gin.Context) {
	userID := currentUserID(c)

	groceryID, err := pathID(c, "grocery_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.RemoveShoppingItem(userID, groceryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from shopping list"})
}
