package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStorage is an in-memory Storage implementation for handler tests.
type fakeStorage struct {
	nextID    uint
	groceries map[uint]*models.Grocery
	users     map[string]*models.User
	recipes   map[uint]*models.Recipe
	shopping  map[uint]*models.ShoppingListItem
	deleted   []uint
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		nextID:    1,
		groceries: make(map[uint]*models.Grocery),
		users:     make(map[string]*models.User),
		recipes:   make(map[uint]*models.Recipe),
		shopping:  make(map[uint]*models.ShoppingListItem),
	}
}

func (f *fakeStorage) allocID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStorage) Inventory(userID uint) ([]models.Grocery, error) {
	var items []models.Grocery
	for _, g := range f.groceries {
		if g.UserID == userID {
			items = append(items, *g)
		}
	}
	return items, nil
}

func (f *fakeStorage) InventoryItem(userID, id uint) (*models.Grocery, error) {
	g, ok := f.groceries[id]
	if !ok || g.UserID != userID {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (f *fakeStorage) CreateItem(item *models.Grocery) error {
	item.ID = f.allocID()
	copied := *item
	f.groceries[item.ID] = &copied
	return nil
}

func (f *fakeStorage) UpdateItem(item *models.Grocery) error {
	copied := *item
	f.groceries[item.ID] = &copied
	return nil
}

func (f *fakeStorage) DeleteItem(item *models.Grocery) error {
	delete(f.groceries, item.ID)
	f.deleted = append(f.deleted, item.ID)
	return nil
}

func (f *fakeStorage) RecipeIngredients(userID, recipeID uint) ([]models.RecipeIngredient, error) {
	r, ok := f.recipes[recipeID]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return r.GetIngredients()
}

func (f *fakeStorage) SearchInventory(userID uint, query string) ([]models.Grocery, error) {
	items, _ := f.Inventory(userID)
	var matched []models.Grocery
	for _, g := range items {
		if containsFold(g.Name, query) || containsFold(g.Category, query) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (f *fakeStorage) CreateUser(user *models.User) error {
	user.ID = f.allocID()
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeStorage) UserByUsername(username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStorage) Recipes(userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for _, r := range f.recipes {
		if r.UserID == userID {
			recipes = append(recipes, *r)
		}
	}
	return recipes, nil
}

func (f *fakeStorage) Recipe(userID, id uint) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeStorage) CreateRecipe(recipe *models.Recipe) error {
	recipe.ID = f.allocID()
	copied := *recipe
	f.recipes[recipe.ID] = &copied
	return nil
}

func (f *fakeStorage) DeleteRecipe(userID, id uint) error {
	if r, ok := f.recipes[id]; ok && r.UserID == userID {
		delete(f.recipes, id)
	}
	return nil
}

func (f *fakeStorage) ShoppingList(userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	for _, it := range f.shopping {
		if it.UserID == userID {
			items = append(items, *it)
		}
	}
	return items, nil
}

func (f *fakeStorage) AddShoppingItem(userID, groceryID uint, quantity uint) error {
	for _, it := range f.shopping {
		if it.UserID == userID && it.GroceryID == groceryID {
			it.Quantity += quantity
			return nil
		}
	}
	id := f.allocID()
	f.shopping[id] = &models.ShoppingListItem{
		Model:     gorm.Model{ID: id},
		UserID:    userID,
		GroceryID: groceryID,
		Quantity:  quantity,
	}
	return nil
}

func (f *fakeStorage) RemoveShoppingItem(userID, groceryID uint) error {
	for id, it := range f.shopping {
		if it.UserID == userID && it.GroceryID == groceryID {
			delete(f.shopping, id)
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return len(sub) == 0 ||
		len(s) >= len(sub) && (stringContainsFold(s, sub))
}

func stringContainsFold(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(sub)], sub) {
			return true
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// fakeGenerator replays canned model responses.
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func (g *fakeGenerator) GenerateWithImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func newTestServer(store Storage, gen *fakeGenerator) *Server {
	if gen == nil {
		gen = &fakeGenerator{}
	}
	return NewServer(store, gen, nil, "test-secret")
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func signupAndToken(t *testing.T, s *Server) string {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "asha",
		"email":    "asha@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)

	w := doJSON(t, s, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)

	w := doJSON(t, s, http.MethodGet, "/api/v1/groceries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/groceries", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupAndSignin(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)
	signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/signin", "", gin.H{
		"username": "asha",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/signin", "", gin.H{
		"username": "asha",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupDuplicateUsername(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)
	signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "asha",
		"email":    "other@example.com",
		"password": "another-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGroceryCRUD(t *testing.T) {
	store := newFakeStorage()
	s := newTestServer(store, nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/groceries", token, gin.H{
		"name":        "Milk",
		"quantity":    1.0,
		"unit":        "l",
		"category":    "Dairy",
		"expiry_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Grocery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Milk", created.Name)

	w = doJSON(t, s, http.MethodGet, "/api/v1/groceries", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Items    []models.Grocery `json:"items"`
		Warnings struct {
			ExpiringSoon []models.Grocery `json:"expiring_soon"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Items, 1)
	// Expires in 2 days, inside the warning window
	assert.Len(t, listed.Warnings.ExpiringSoon, 1)

	w = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/v1/groceries/%d", created.ID), token, gin.H{
		"name":        "Milk",
		"quantity":    0.5,
		"unit":        "l",
		"expiry_date": time.Now().Add(48 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0.5, store.groceries[created.ID].Quantity)

	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/groceries/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.groceries)
}

func TestUpdateGroceryNotFound(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPut, "/api/v1/groceries/999", token, gin.H{
		"name":        "Ghost",
		"quantity":    1.0,
		"unit":        "unit",
		"expiry_date": time.Now(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchGroceries(t *testing.T) {
	store := newFakeStorage()
	s := newTestServer(store, nil)
	token := signupAndToken(t, s)

	for _, item := range []gin.H{
		{"name": "Tomato", "quantity": 5.0, "unit": "unit", "category": "Vegetables", "expiry_date": time.Now().Add(72 * time.Hour)},
		{"name": "Paneer", "quantity": 200.0, "unit": "g", "category": "Dairy", "expiry_date": time.Now().Add(72 * time.Hour)},
	} {
		w := doJSON(t, s, http.MethodPost, "/api/v1/groceries", token, item)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/groceries/search?q=toma", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.Grocery `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Tomato", resp.Items[0].Name)

	w = doJSON(t, s, http.MethodGet, "/api/v1/groceries/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShoppingListFlow(t *testing.T) {
	store := newFakeStorage()
	s := newTestServer(store, nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/shopping-list", token, gin.H{"grocery_id": 7, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	// Adding the same grocery again increments
	w = doJSON(t, s, http.MethodPost, "/api/v1/shopping-list", token, gin.H{"grocery_id": 7})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/shopping-list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.ShoppingListItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(3), resp.Items[0].Quantity)

	w = doJSON(t, s, http.MethodDelete, "/api/v1/shopping-list/7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.shopping)
}

func TestSaveRecipeParsesIngredients(t *testing.T) {
	store := newFakeStorage()
	s := newTestServer(store, nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/recipes", token, gin.H{
		"name":         "Tomato Rice",
		"description":  "Quick one-pot rice",
		"ingredients":  []string{"1 cup Rice", "2 Tomatoes", "Salt to taste"},
		"instructions": []string{"Cook rice", "Add tomatoes"},
		"time":         "30 mins",
		"difficulty":   "Easy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.RecipeID)
	require.Len(t, saved.Ingredients, 3)

	assert.Equal(t, models.RecipeIngredient{Name: "Rice", Quantity: 1, Unit: "cup"}, saved.Ingredients[0])
	assert.Equal(t, models.RecipeIngredient{Name: "Tomatoes", Quantity: 2, Unit: "unit"}, saved.Ingredients[1])
	assert.Equal(t, models.RecipeIngredient{Name: "Salt to taste", Quantity: 1, Unit: "as needed"}, saved.Ingredients[2])
}

func TestDeductionFlow(t *testing.T) {
	store := newFakeStorage()
	s := newTestServer(store, nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/groceries", token, gin.H{
		"name":        "Rice",
		"quantity":    1.0,
		"unit":        "kg",
		"category":    "Grains",
		"expiry_date": time.Now().Add(90 * 24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var rice models.Grocery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rice))

	w = doJSON(t, s, http.MethodPost, "/api/v1/recipes", token, gin.H{
		"name":        "Plain Rice",
		"ingredients": []string{"200g Rice"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))

	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d/deductions", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var candidates struct {
		Deductions []struct {
			BestMatchID  *uint   `json:"best_match_id"`
			SuggestedQty float64 `json:"suggested_qty"`
			Note         string  `json:"note"`
		} `json:"deductions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	require.Len(t, candidates.Deductions, 1)
	require.NotNil(t, candidates.Deductions[0].BestMatchID)
	assert.Equal(t, rice.ID, *candidates.Deductions[0].BestMatchID)
	// 200 g against a 1 kg stock converts to 0.2 kg
	assert.Equal(t, 0.2, candidates.Deductions[0].SuggestedQty)
	assert.Contains(t, candidates.Deductions[0].Note, "converted from")

	w = doJSON(t, s, http.MethodPost, "/api/v1/pantry/deductions", token, gin.H{
		"deductions": []gin.H{{"grocery_id": rice.ID, "deduct_qty": 0.2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		UpdatedCount int `json:"updated_count"`
		DeletedCount int `json:"deleted_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, 0, result.DeletedCount)
	assert.InDelta(t, 0.8, store.groceries[rice.ID].Quantity, 1e-9)
}

func TestDeductionCandidatesUnknownRecipe(t *testing.T) {
	s := newTestServer(newFakeStorage(), nil)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodGet, "/api/v1/recipes/42/deductions", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateRecipes(t *testing.T) {
	store := newFakeStorage()
	gen := &fakeGenerator{response: `[
		{"name": "Palak Paneer", "ingredients": ["1 bunch Spinach"], "uses_expiring": true}
	]`}
	s := newTestServer(store, gen)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/groceries", token, gin.H{
		"name":        "Spinach",
		"quantity":    1.0,
		"unit":        "bunch",
		"category":    "Vegetables",
		"expiry_date": time.Now().Add(24 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/ai/recipes", token, gin.H{"preferences": "vegetarian"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recipes []struct {
			Name string `json:"name"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Palak Paneer", resp.Recipes[0].Name)

	// The expiring spinach must land in the priority section of the prompt
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Spinach")
	assert.Contains(t, gen.prompts[0], "vegetarian")
}

func TestGenerateRecipesEmptyPantry(t *testing.T) {
	s := newTestServer(newFakeStorage(), &fakeGenerator{})
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/ai/recipes", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanAndSaveBill(t *testing.T) {
	store := newFakeStorage()
	gen := &fakeGenerator{response: `{"items": [
		{"name": "Milk", "quantity": 1, "unit": "l", "expiry": "2026-09-06", "category": "Dairy"}
	]}`}
	s := newTestServer(store, gen)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/bill/scan", token, gin.H{
		"image":     "aGVsbG8=",
		"mime_type": "image/jpeg",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var scanned struct {
		Items []struct {
			Name     string  `json:"name"`
			Quantity float64 `json:"quantity"`
			Unit     string  `json:"unit"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scanned))
	require.Len(t, scanned.Items, 1)
	assert.Equal(t, "Milk", scanned.Items[0].Name)

	w = doJSON(t, s, http.MethodPost, "/api/v1/bill/items", token, gin.H{
		"items": []gin.H{{
			"name":     "Milk",
			"quantity": 1,
			"unit":     "l",
			"expiry":   time.Now().Add(7 * 24 * time.Hour),
			"category": "Dairy",
		}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Processed int `json:"processed"`
		Created   int `json:"created"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Created)
	require.Len(t, store.groceries, 1)
}

func TestAnalyzeFood(t *testing.T) {
	gen := &fakeGenerator{response: "## Dal Tadka\nApprox 250 kcal"}
	s := newTestServer(newFakeStorage(), gen)
	token := signupAndToken(t, s)

	w := doJSON(t, s, http.MethodPost, "/api/v1/ai/analyze-food", token, gin.H{"image": "aGVsbG8="})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dal Tadka")
}
