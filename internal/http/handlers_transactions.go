package http

import (
	"net/http"
	"strings"

	"expenso/internal/core"
	"expenso/internal/log"
	"expenso/internal/query"
	"expenso/internal/recurrence"
)

type transactionList struct {
	Transactions []core.Transaction `json:"transactions"`
	Totals       query.Totals       `json:"totals"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset(r.Context())
	log.FromContext(r.Context()).InfoContext(r.Context(), "State reset")
	w.WriteHeader(http.StatusNoContent)
}

// parseQuery reads the list filters. Unknown range or sort values are
// rejected rather than silently ignored.
func parseQuery(r *http.Request) (query.Query, *errorResponse) {
	v := r.URL.Query()
	q := query.Query{
		Range:  query.DateRange(strings.TrimSpace(v.Get("range"))),
		Search: v.Get("q"),
		Fields: query.FieldFilters{
			Date:        v.Get("date"),
			Category:    v.Get("category"),
			Description: v.Get("description"),
			Amount:      v.Get("amount"),
			Type:        v.Get("type"),
		},
		Sort: query.SortOption(strings.TrimSpace(v.Get("sort"))),
	}
	if q.Range != "" && !q.Range.Valid() {
		return q, &errorResponse{Error: "range must be one of day, week, month, all", Field: "range"}
	}
	if q.Sort != "" && !q.Sort.Valid() {
		return q, &errorResponse{Error: "sort must be one of date-desc, date-asc, amount-desc, amount-asc", Field: "sort"}
	}
	return q, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q, bad := parseQuery(r)
	if bad != nil {
		writeError(w, http.StatusBadRequest, bad.Error, bad.Field)
		return
	}

	snap := s.store.Snapshot()
	txs := query.Apply(snap.Transactions, snap.Categories, q, s.now())
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactionList{
		Transactions: txs,
		Totals:       query.AggregateTotals(txs),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.Transaction
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	tx, err := s.store.AddTransaction(r.Context(), in)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction created",
		log.FieldTransactionID, tx.ID,
		log.FieldCategoryID, tx.Category)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.Transaction
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	in.ID = r.PathValue("id")

	if err := s.store.UpdateTransaction(r.Context(), in); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProcessRecurring(w http.ResponseWriter, r *http.Request) {
	created, err := s.store.ProcessRecurring(r.Context(), s.now())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if created == nil {
		created = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": created})
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 30, 1, 366)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "days")
		return
	}
	upcoming := s.store.Upcoming(s.now(), days)
	if upcoming == nil {
		upcoming = []recurrence.Occurrence{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "occurrences": upcoming})
}
