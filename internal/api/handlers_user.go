package api

import (
	"errors"
	"net/http"

	"finled/internal/core"
	"finled/internal/users"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", user)
}

// handleLogin reports credential failures with an error envelope but a 200
// status line, so clients distinguish outcomes by the envelope alone.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			writeError(w, http.StatusOK, err.Error())
		case errors.Is(err, users.ErrInvalidCredentials):
			writeError(w, http.StatusOK, "Invalid credentials")
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"token": result.Token,
		"user":  result.Identity,
	})
}
