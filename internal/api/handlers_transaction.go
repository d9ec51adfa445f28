package api

import (
	"fmt"
	"net/http"

	"finled/internal/ledger"
)

type monthRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in ledger.TransactionInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := s.ledger.CreateTransaction(r.Context(), owner, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// A duplicate is not a failure: the response carries the existing
	// record under an error envelope with a 200 status line.
	if result.AlreadyExists {
		writeJSON(w, http.StatusOK, envelope{
			Status:  "error",
			Message: "Transaction with this type, category, and date already exists",
			Data:    result.Transaction,
		})
		return
	}

	writeSuccess(w, http.StatusCreated, "Transaction added", result.Transaction)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	txns, err := s.ledger.ListTransactions(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", txns)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	txn, err := s.ledger.GetTransaction(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", txn)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in ledger.TransactionInput
	if err := decodeBody(r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}

	txn, err := s.ledger.UpdateTransaction(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Transaction updated", txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Transaction deleted", nil)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req monthRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary, err := s.ledger.MonthSummary(r.Context(), owner, req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", summary)
}

func (s *Server) handleMonthDetails(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req monthRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	details, err := s.ledger.MonthDetails(r.Context(), owner, req.Date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("Income and expense transactions for %s", req.Date), details)
}
