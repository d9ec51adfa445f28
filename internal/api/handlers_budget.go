package api

import (
	"fmt"
	"net/http"

	"finled/internal/ledger"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in ledger.BudgetInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := s.ledger.CreateBudget(r.Context(), owner, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if result.AlreadyExists {
		writeJSON(w, http.StatusOK, envelope{
			Status:  "error",
			Message: "Budget for this month and year already exists",
			Data:    result.Budget,
		})
		return
	}

	writeSuccess(w, http.StatusCreated, "Budget added", result.Budget)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	budgets, err := s.ledger.ListBudgets(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", budgets)
}

func (s *Server) handleBudgetsByDate(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req monthRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	budgets, err := s.ledger.BudgetsByDate(r.Context(), owner, req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("Budgets for %s", req.Date), budgets)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	budget, err := s.ledger.GetBudget(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", budget)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in ledger.BudgetInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	budget, err := s.ledger.UpdateBudget(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Budget updated", budget)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := s.ledger.DeleteBudget(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Budget deleted", nil)
}
