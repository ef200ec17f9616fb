package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2e8b57")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff9f0a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	pantryView  table.Model
	recipeList  list.Model
	suggestions []GeneratedRecipe
	warnings    ExpiryWarnings
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	loading     bool
	currentView string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Pantry", desc: "View pantry items and expiry warnings"},
		item{title: "Saved Recipes", desc: "Browse recipes you have kept"},
		item{title: "Suggest Recipes", desc: "Ask for recipes from what you have"},
		item{title: "Shopping List", desc: "View queued purchases"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Larder CLI"

	// Initialize pantry view
	columns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Quantity", Width: 12},
		{Title: "Category", Width: 18},
		{Title: "Expires", Width: 12},
	}
	pantryTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// Initialize recipe list view
	recipeList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	recipeList.Title = "Saved Recipes"

	// Initialize text input for preferences
	ti := textinput.New()
	ti.Placeholder = "Preferences (e.g. vegetarian, spicy)..."
	ti.CharLimit = 156
	ti.Width = 40

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		pantryView:  pantryTable,
		recipeList:  recipeList,
		spinner:     s,
		textInput:   ti,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == "main" {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Pantry":
						m.currentView = "pantry"
						m.loading = true
						return m, fetchPantry(m.client)
					case "Saved Recipes":
						m.currentView = "recipes"
						m.loading = true
						return m, fetchRecipes(m.client)
					case "Suggest Recipes":
						m.currentView = "preferences"
						m.textInput.SetValue("")
						m.textInput.Focus()
						return m, nil
					case "Shopping List":
						m.currentView = "shopping"
						m.loading = true
						return m, fetchShoppingList(m.client)
					}
				}
			} else if m.currentView == "preferences" {
				m.currentView = "suggestions"
				m.loading = true
				return m, generateRecipes(m.client, m.textInput.Value())
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
			}
		}
	case pantryMsg:
		m.loading = false
		m.warnings = msg.pantry.Warnings
		m.pantryView.SetRows(pantryRows(msg.pantry.Items))
		return m, nil
	case recipesMsg:
		m.loading = false
		m.recipeList.SetItems(recipeItems(msg.recipes))
		return m, nil
	case suggestionsMsg:
		m.loading = false
		m.suggestions = msg.recipes
		return m, nil
	case shoppingMsg:
		m.loading = false
		m.recipeList.SetItems(shoppingItems(msg.items))
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "pantry":
		m.pantryView, cmd = m.pantryView.Update(msg)
	case "recipes", "shopping":
		m.recipeList, cmd = m.recipeList.Update(msg)
	case "preferences":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.loading {
		return docStyle.Render(m.spinner.View() + " Loading...")
	}

	help := "\nPress 'esc' to go back\n"
	if m.error != "" {
		help += errorStyle.Render(m.error) + "\n"
	}

	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "pantry":
		banner := ""
		if n := len(m.warnings.Expired); n > 0 {
			banner += errorStyle.Render(fmt.Sprintf("%d expired", n)) + " "
		}
		if n := len(m.warnings.ExpiringSoon); n > 0 {
			banner += warnStyle.Render(fmt.Sprintf("%d expiring soon", n))
		}
		if banner != "" {
			banner += "\n\n"
		}
		return docStyle.Render(titleStyle.Render("Pantry") + "\n\n" + banner + m.pantryView.View() + help)
	case "recipes", "shopping":
		return docStyle.Render(m.recipeList.View() + help)
	case "preferences":
		return docStyle.Render(titleStyle.Render("Suggest Recipes") + "\n\n" +
			m.textInput.View() + "\n\nPress 'enter' to generate, 'esc' to cancel\n")
	case "suggestions":
		view := titleStyle.Render("Suggested Recipes") + "\n\n"
		if len(m.suggestions) == 0 {
			view += "No suggestions yet.\n"
		}
		for i, r := range m.suggestions {
			marker := ""
			if r.UsesExpiring {
				marker = " " + warnStyle.Render("uses expiring")
			}
			view += fmt.Sprintf("%d. %s (%s, %s)%s\n   %s\n", i+1, r.Name, r.Time, r.Difficulty, marker, r.Description)
		}
		return docStyle.Render(view + help)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type pantryMsg struct {
	pantry PantryResponse
}

type recipesMsg struct {
	recipes []Recipe
}

type suggestionsMsg struct {
	recipes []GeneratedRecipe
}

type shoppingMsg struct {
	items []ShoppingListItem
}

type errorMsg struct {
	err string
}

// fetchPantry retrieves the pantry from the API
func fetchPantry(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		pantry, err := client.GetPantry()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching pantry: %v", err)}
		}
		return pantryMsg{pantry: *pantry}
	}
}

// fetchRecipes retrieves saved recipes from the API
func fetchRecipes(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.GetRecipes()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching recipes: %v", err)}
		}
		return recipesMsg{recipes: recipes}
	}
}

// generateRecipes asks the API for suggestions
func generateRecipes(client *ApiClient, preferences string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := client.GenerateRecipes(preferences)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error generating recipes: %v", err)}
		}
		return suggestionsMsg{recipes: recipes}
	}
}

// fetchShoppingList retrieves the shopping list from the API
func fetchShoppingList(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetShoppingList()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching shopping list: %v", err)}
		}
		return shoppingMsg{items: items}
	}
}

// pantryRows converts pantry items to table rows
func pantryRows(items []Grocery) []table.Row {
	rows := make([]table.Row, len(items))
	for i, g := range items {
		rows[i] = table.Row{
			g.Name,
			fmt.Sprintf("%g %s", g.Quantity, g.Unit),
			g.Category,
			g.ExpiryDate.Format("2006-01-02"),
		}
	}
	return rows
}

// recipeItems converts saved recipes to list items
func recipeItems(recipes []Recipe) []list.Item {
	items := make([]list.Item, len(recipes))
	for i, r := range recipes {
		items[i] = item{
			title: r.Name,
			desc:  fmt.Sprintf("%s - %s - %d ingredients", r.CookingTime, r.Difficulty, len(r.Ingredients)),
		}
	}
	return items
}

// shoppingItems converts shopping list entries to list items
func shoppingItems(entries []ShoppingListItem) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		name := e.Grocery.Name
		if name == "" {
			name = fmt.Sprintf("Grocery #%d", e.GroceryID)
		}
		items[i] = item{
			title: name,
			desc:  fmt.Sprintf("Quantity: %d", e.Quantity),
		}
	}
	return items
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
