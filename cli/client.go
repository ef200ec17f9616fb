package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Larder API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
}

// NewApiClient creates a new API client. Credentials come from
// LARDER_USERNAME / LARDER_PASSWORD; without them only the health view
// works.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("LARDER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}

	if username, password := os.Getenv("LARDER_USERNAME"), os.Getenv("LARDER_PASSWORD"); username != "" {
		if err := client.SignIn(username, password); err != nil {
			fmt.Printf("Warning: sign in failed: %v\n", err)
		}
	}

	return client
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// SignIn authenticates and stores the session token
func (c *ApiClient) SignIn(username, password string) error {
	body := map[string]string{"username": username, "password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(http.MethodPost, "/api/v1/auth/signin", body, &resp); err != nil {
		return err
	}

	c.Token = resp.Token
	return nil
}

// Grocery mirrors the API's pantry item payload
type Grocery struct {
	ID         uint      `json:"ID"`
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// ExpiryWarnings mirrors the API's expiry partitions
type ExpiryWarnings struct {
	Expired      []Grocery `json:"expired"`
	ExpiringSoon []Grocery `json:"expiring_soon"`
}

// PantryResponse is the inventory listing with warnings
type PantryResponse struct {
	Items    []Grocery      `json:"items"`
	Warnings ExpiryWarnings `json:"warnings"`
}

// GetPantry retrieves the pantry with expiry warnings
func (c *ApiClient) GetPantry() (*PantryResponse, error) {
	var resp PantryResponse
	if err := c.do(http.MethodGet, "/api/v1/groceries", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recipe mirrors the API's saved recipe payload
type Recipe struct {
	ID          uint   `json:"ID"`
	RecipeID    string `json:"recipe_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CookingTime string `json:"time"`
	Difficulty  string `json:"difficulty"`
	Calories    string `json:"calories"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// GetRecipes retrieves saved recipes
func (c *ApiClient) GetRecipes() ([]Recipe, error) {
	var resp struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := c.do(http.MethodGet, "/api/v1/recipes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// GeneratedRecipe mirrors one AI recipe suggestion
type GeneratedRecipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Time         string   `json:"time"`
	Difficulty   string   `json:"difficulty"`
	UsesExpiring bool     `json:"uses_expiring"`
}

// GenerateRecipes asks the service for recipe suggestions
func (c *ApiClient) GenerateRecipes(preferences string) ([]GeneratedRecipe, error) {
	body := map[string]string{"preferences": preferences}

	var resp struct {
		Recipes []GeneratedRecipe `json:"recipes"`
	}
	if err := c.do(http.MethodPost, "/api/v1/ai/recipes", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// ShoppingListItem mirrors one shopping list entry
type ShoppingListItem struct {
	GroceryID uint    `json:"grocery_id"`
	Quantity  uint    `json:"quantity"`
	Grocery   Grocery `json:"grocery"`
}

// GetShoppingList retrieves the shopping list
func (c *ApiClient) GetShoppingList() ([]ShoppingListItem, error) {
	var resp struct {
		Items []ShoppingListItem `json:"items"`
	}
	if err := c.do(http.MethodGet, "/api/v1/shopping-list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// do runs one JSON request/response round trip
func (c *ApiClient) do(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("API error: status code %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
