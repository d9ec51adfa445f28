package api

import (
	"context"
	"net/http"
	"time"

	"finled/internal/auth"
	"finled/internal/core"
	"finled/internal/ledger"
	"finled/internal/users"
)

// Server wires the HTTP routes to the user and ledger services.
type Server struct {
	httpServer *http.Server
	users      *users.Service
	ledger     *ledger.Service
	gate       *auth.Gate
	limiter    *rateLimiter
}

func NewServer(addr string, usersSvc *users.Service, ledgerSvc *ledger.Service, gate *auth.Gate, ratePerMinute int) *Server {
	s := &Server{
		users:   usersSvc,
		ledger:  ledgerSvc,
		gate:    gate,
		limiter: newRateLimiter(ratePerMinute),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleWelcome)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)

	mux.HandleFunc("POST /api/transaction", gate.Require(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transaction", gate.Require(s.handleListTransactions))
	mux.HandleFunc("POST /api/transaction/summary", gate.Require(s.handleSummary))
	mux.HandleFunc("POST /api/transaction/txn-details", gate.Require(s.handleMonthDetails))
	mux.HandleFunc("GET /api/transaction/{id}", gate.Require(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transaction/{id}", gate.Require(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transaction/{id}", gate.Require(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/budget", gate.Require(s.handleCreateBudget))
	mux.HandleFunc("GET /api/budget", gate.Require(s.handleListBudgets))
	mux.HandleFunc("POST /api/budget/budget-by-date", gate.Require(s.handleBudgetsByDate))
	mux.HandleFunc("GET /api/budget/{id}", gate.Require(s.handleGetBudget))
	mux.HandleFunc("PUT /api/budget/{id}", gate.Require(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budget/{id}", gate.Require(s.handleDeleteBudget))

	handler := withTrace(withCORS(s.limiter.middleware(mux)))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// requireIdentity reads the identity the gate stored on the context. The
// gate runs before every protected handler, so a miss indicates a wiring
// bug rather than a client error.
func requireIdentity(w http.ResponseWriter, r *http.Request) (core.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, ok
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "Welcome to the Budget Backend API", nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "ready", nil)
}
