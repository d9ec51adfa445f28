// Package users handles registration and login. Login is the only operation
// that mints identity tokens; everything after it trusts the token alone.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finled/internal/auth"
	"finled/internal/core"
	"finled/internal/store"
)

var (
	// ErrEmailTaken is returned when a registration reuses an email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	users  store.UserStore
	tokens *auth.TokenService
}

func NewService(users store.UserStore, tokens *auth.TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates an account with a hashed credential. The returned user
// never carries the hash outward; handlers serialize core.User with the
// hash excluded.
func (s *Service) Register(ctx context.Context, name, email, password string) (core.User, error) {
	if name == "" || email == "" || password == "" {
		return core.User{}, core.InvalidInput("Please provide name, email, and password")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("look up email: %w", err)
	}
	if existing != nil {
		return core.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return core.User{}, err
	}

	created, err := s.users.InsertUser(ctx, core.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", created.ID)

	return created, nil
}

// LoginResult carries the minted token and the identity embedded in it.
type LoginResult struct {
	Token    string
	Identity core.Identity
}

// Login verifies the credential and issues a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, core.InvalidInput("Please provide email and password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("look up email: %w", err)
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	identity := core.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return LoginResult{}, err
	}

	slog.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return LoginResult{Token: token, Identity: identity}, nil
}
