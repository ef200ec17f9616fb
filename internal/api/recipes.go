package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"larder/internal/ai"
	"larder/internal/models"
	"larder/internal/units"
)

// saveRecipeRequest carries a generated recipe the user chose to keep.
// Ingredients arrive as the model's free-text strings and are parsed into
// structured (quantity, unit, name) triples before persisting.
type saveRecipeRequest struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	Ingredients  []string  `json:"ingredients" binding:"required"`
	Instructions []string  `json:"instructions"`
	Time         string    `json:"time"`
	Difficulty   string    `json:"difficulty"`
	Calories     string    `json:"calories"`
	Macros       ai.Macros `json:"macros"`
}

// ListRecipes returns the user's saved recipes
func (s *Server) ListRecipes(c *gin.Context) {
	userID := currentUserID(c)

	recipes, err := s.store.Recipes(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range recipes {
		if _, err := recipes[i].GetIngredients(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one saved recipe
func (s *Server) GetRecipe(c *gin.Context) {
	userID := currentUserID(c)

	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := s.store.Recipe(userID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if _, err := recipe.GetIngredients(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// SaveRecipe persists a generated recipe with structured ingredients
func (s *Server) SaveRecipe(c *gin.Context) {
	userID := currentUserID(c)

	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, text := range req.Ingredients {
		qty, unit, name := units.ParseIngredient(text)
		ingredients = append(ingredients, models.RecipeIngredient{
			Name:     name,
			Quantity: qty,
			Unit:     unit,
		})
	}

	recipe := models.Recipe{
		RecipeID:     uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Instructions: models.StringSlice(req.Instructions),
		CookingTime:  req.Time,
		Difficulty:   req.Difficulty,
		Calories:     req.Calories,
		Protein:      req.Macros.Protein,
		Carbs:        req.Macros.Carbs,
		Fats:         req.Macros.Fats,
	}
	if err := recipe.SetIngredients(ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.CreateRecipe(&recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.hub.BroadcastActivity("recipe_saved", gin.H{"name": recipe.Name, "recipe_id": recipe.RecipeID})

	c.JSON(http.StatusCreated, recipe)
}

// DeleteRecipe removes a saved recipe
func (s *Server) DeleteRecipe(c *gin.Context) {
	userID := currentUserID(c)

	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.DeleteRecipe(userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}
