package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/ai"
	"larder/internal/pantry"
)

type generateRecipesRequest struct {
	Preferences string `json:"preferences"`
}

// GenerateRecipes asks the model for recipes built from the user's pantry,
// prioritizing ingredients that expire within the warning window.
func (s *Server) GenerateRecipes(c *gin.Context) {
	userID := currentUserID(c)

	var req generateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventory, err := s.store.Inventory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(inventory) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pantry is empty, add some groceries first"})
		return
	}

	warnings := pantry.CheckExpiry(inventory)
	expiringNames := make(map[string]bool, len(warnings.ExpiringSoon))
	var expiring, others []string
	for _, item := range warnings.ExpiringSoon {
		expiring = append(expiring, item.Name)
		expiringNames[item.Name] = true
	}
	for _, item := range inventory {
		if item.IsExpired() || expiringNames[item.Name] {
			continue
		}
		others = append(others, item.Name)
	}

	prompt := ai.RecipePrompt(expiring, others, req.Preferences)

	start := time.Now()
	raw, err := s.generator.Generate(c.Request.Context(), prompt)
	s.recordModelCall("recipe_generation", start, err)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	recipes, err := ai.ParseRecipes(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not extract recipes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type refineRecipeRequest struct {
	Recipe      json.RawMessage `json:"recipe" binding:"required"`
	Preferences string          `json:"preferences" binding:"required"`
}

// RefineRecipe asks the model to rework a generated recipe per the user's
// preferences ("make it vegan", "less spicy").
func (s *Server) RefineRecipe(c *gin.Context) {
	var req refineRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := ai.RefinePrompt(string(req.Recipe), req.Preferences)

	start := time.Now()
	raw, err := s.generator.Generate(c.Request.Context(), prompt)
	s.recordModelCall("recipe_refine", start, err)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	recipes, err := ai.ParseRecipes(raw)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not extract refined recipe: " + err.Error()})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "model returned no recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipes[0]})
}

type analyzeFoodRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

// AnalyzeFood returns a nutritional breakdown of a food photo
func (s *Server) AnalyzeFood(c *gin.Context) {
	var req analyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	analysis, err := s.generator.GenerateWithImage(c.Request.Context(), ai.FoodAnalysisPrompt, req.Image, req.MimeType)
	s.recordModelCall("food_analysis", start, err)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
