package core

import "slices"

// StorageKey names the persisted slot holding the snapshot.
const StorageKey = "expense-tracker"

// Snapshot is the complete state at one instant.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
	Theme        Theme         `json:"theme"`
}

// DefaultCategories returns the categories present at first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food", Icon: "utensils", Color: "#FF6B6B"},
		{ID: "2", Name: "Transport", Icon: "car", Color: "#4ECDC4"},
		{ID: "3", Name: "Bills", Icon: "file-text", Color: "#45B7D1"},
		{ID: "4", Name: "Shopping", Icon: "shopping-bag", Color: "#96CEB4"},
		{ID: "5", Name: "Entertainment", Icon: "tv", Color: "#FFEEAD"},
		{ID: "6", Name: "Health", Icon: "heart", Color: "#D4A5A5"},
		{ID: "7", Name: "Salary", Icon: "wallet", Color: "#9ACD32"},
		{ID: "8", Name: "Other", Icon: "more-horizontal", Color: "#A9A9A9"},
	}
}

// InitialSnapshot is the state used when nothing was saved yet.
func InitialSnapshot() Snapshot {
	return Snapshot{
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
		Budgets:      []Budget{},
		Theme:        Light,
	}
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Transactions: cloneOrEmpty(s.Transactions),
		Categories:   cloneOrEmpty(s.Categories),
		Budgets:      cloneOrEmpty(s.Budgets),
		Theme:        s.Theme,
	}
}

// Normalized fills nil collections and an unknown theme with defaults.
func (s Snapshot) Normalized() Snapshot {
	if s.Categories == nil {
		s.Categories = DefaultCategories()
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Budgets == nil {
		s.Budgets = []Budget{}
	}
	if !s.Theme.Valid() {
		s.Theme = Light
	}
	return s
}

// CategoryName resolves id to a name, or "" when unknown.
func CategoryName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
