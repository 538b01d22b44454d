package http

import (
	"net/http"

	"expenso/internal/core"
	"expenso/internal/log"
	"expenso/internal/query"
)

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().Categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in core.Category
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	c, err := s.store.AddCategory(r.Context(), in)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Category created", log.FieldCategoryID, c.ID)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var in core.Category
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	in.ID = r.PathValue("id")

	if err := s.store.UpdateCategory(r.Context(), in); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCategory also removes the category's transactions and budget.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Category deleted", log.FieldCategoryID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	statuses := query.BudgetStatuses(snap.Transactions, snap.Categories, snap.Budgets)
	if statuses == nil {
		statuses = []query.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, statuses)
}

type budgetRequest struct {
	Limit core.Amount `json:"limit"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var in budgetRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	b := core.Budget{CategoryID: r.PathValue("categoryId"), Limit: in.Limit}
	if err := s.store.SetBudget(r.Context(), b); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := s.store.ToggleTheme(r.Context())
	writeJSON(w, http.StatusOK, map[string]core.Theme{"theme": theme})
}
