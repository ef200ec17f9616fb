// Package api is the HTTP surface of the pantry service: account signup
// and signin, grocery and shopping list management, AI recipe endpoints,
// bill scanning and the post-cooking deduction flow.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/ai"
	"larder/internal/models"
	"larder/internal/monitoring"
	"larder/internal/pantry"
)

// Storage is the persistence interface the API depends on. The pantry
// collaborator methods are embedded so one gorm store serves both.
type Storage interface {
	pantry.Store

	SearchInventory(userID uint, query string) ([]models.Grocery, error)

	CreateUser(user *models.User) error
	UserByUsername(username string) (*models.User, error)

	Recipes(userID uint) ([]models.Recipe, error)
	Recipe(userID, id uint) (*models.Recipe, error)
	CreateRecipe(recipe *models.Recipe) error
	DeleteRecipe(userID, id uint) error

	ShoppingList(userID uint) ([]models.ShoppingListItem, error)
	AddShoppingItem(userID, groceryID uint, quantity uint) error
	RemoveShoppingItem(userID, groceryID uint) error
}

// Server is the main API handler for the pantry service
type Server struct {
	router    *gin.Engine
	store     Storage
	planner   *pantry.Planner
	resolver  *pantry.Resolver
	generator ai.Generator
	monitor   *monitoring.Monitor
	metrics   *monitoring.MetricsCollector
	hub       *Hub
	jwtSecret []byte
}

// NewServer creates a new API server instance
func NewServer(store Storage, generator ai.Generator, metrics *monitoring.MetricsCollector, jwtSecret string) *Server {
	router := gin.Default()

	s := &Server{
		router:    router,
		store:     store,
		planner:   pantry.NewPlanner(store),
		resolver:  pantry.NewResolver(store),
		generator: generator,
		monitor:   monitoring.NewMonitor(),
		metrics:   metrics,
		hub:       NewHub(),
		jwtSecret: []byte(jwtSecret),
	}

	go s.hub.Run()

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Larder API is running"})
	})

	s.router.GET("/stats", s.GetStats)

	if s.metrics != nil {
		s.router.Use(s.requestMetrics())
	}

	// Account endpoints are the only unauthenticated ones
	auth := s.router.Group("/api/v1/auth")
	{
		auth.POST("/signup", s.Signup)
		auth.POST("/signin", s.Signin)
	}

	v1 := s.router.Group("/api/v1")
	v1.Use(s.AuthMiddleware())
	{
		// Pantry management
		v1.GET("/groceries", s.ListGroceries)
		v1.GET("/groceries/search", s.SearchGroceries)
		v1.POST("/groceries", s.CreateGrocery)
		v1.PUT("/groceries/:id", s.UpdateGrocery)
		v1.DELETE("/groceries/:id", s.DeleteGrocery)
		v1.GET("/groceries/expiring", s.GetExpiryWarnings)

		// Shopping list
		v1.GET("/shopping-list", s.GetShoppingList)
		v1.POST("/shopping-list", s.AddToShoppingList)
		v1.DELETE("/shopping-list/:grocery_id", s.RemoveFromShoppingList)

		// Recipes
		v1.GET("/recipes", s.ListRecipes)
		v1.GET("/recipes/:id", s.GetRecipe)
		v1.POST("/recipes", s.SaveRecipe)
		v1.DELETE("/recipes/:id", s.DeleteRecipe)
		v1.GET("/recipes/:id/deductions", s.GetDeductionCandidates)

		// Cooking flow
		v1.POST("/pantry/deductions", s.ApplyDeductions)

		// Bill scanning
		v1.POST("/bill/scan", s.ScanBill)
		v1.POST("/bill/items", s.SaveBillItems)

		// AI features
		v1.POST("/ai/recipes", s.GenerateRecipes)
		v1.POST("/ai/refine", s.RefineRecipe)
		v1.POST("/ai/analyze-food", s.AnalyzeFood)
	}

	// Activity feed
	s.router.GET("/ws", s.AuthMiddleware(), s.handleWebSocket)
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GetStats reports runtime counters collected by the monitor
func (s *Server) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

// requestMetrics observes the duration of every served request
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.RecordRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

// pathID parses a numeric :id style route parameter
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}
