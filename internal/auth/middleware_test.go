package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finled/internal/core"
)

func newGate(t *testing.T) (*Gate, *TokenService) {
	t.Helper()
	svc := NewTokenService("gate-secret", time.Hour)
	return NewGate(svc), svc
}

func TestGateRejectsMissingToken(t *testing.T) {
	gate, _ := newGate(t)
	handler := gate.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/api/transaction", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No token") {
		t.Fatalf("body missing no-token message: %s", rr.Body.String())
	}
}

func TestGateRejectsInvalidToken(t *testing.T) {
	gate, _ := newGate(t)
	handler := gate.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "not valid") {
		t.Fatalf("body missing invalid-token message: %s", rr.Body.String())
	}
}

func TestGateInjectsIdentity(t *testing.T) {
	gate, svc := newGate(t)
	want := core.Identity{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	token, err := svc.Issue(want)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got core.Identity
	handler := gate.Require(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			t.Fatal("identity missing from context")
		}
		got = id
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

func TestGateAcceptsBareToken(t *testing.T) {
	// The original API stripped an optional "Bearer " prefix rather than
	// requiring it; clients sending the raw token still authenticate.
	gate, svc := newGate(t)
	token, err := svc.Issue(core.Identity{ID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	called := false
	handler := gate.Require(func(w http.ResponseWriter, r *http.Request) { called = true })

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
	req.Header.Set("Authorization", token)
	handler(rr, req)

	if !called || rr.Code != http.StatusOK {
		t.Fatalf("bare token rejected: called=%v status=%d", called, rr.Code)
	}
}
