// Package services contains the server-side business logic. This file
// implements AuthService, which registers accounts of either variant and
// issues signed tokens on signup and login.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/cryptox"
	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server/auth"
	"github.com/ericmlantz/backend/internal/server/config"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/credentials"
	"github.com/google/uuid"
)

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token   string
	ID      string
	Variant models.Variant
}

// AuthService provides signup and login for users and restaurants.
type AuthService struct {
	credentials           credentials.Repository
	hasher                cryptox.PasswordHasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	logger                logging.Logger

	// dummyHash is compared against when the account does not exist, so a
	// failed login costs one bcrypt comparison either way.
	dummyHash []byte
}

// NewAuthService constructs an AuthService using the credential store and
// server config. It fails when the hasher cannot produce the dummy hash used
// for unknown emails.
func NewAuthService(repo credentials.Repository, hasher cryptox.PasswordHasher, cfg *config.Config, logger logging.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &AuthService{
		credentials:           repo,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		logger:                logger.With("module", "auth"),
		dummyHash:             dummy,
	}, nil
}

// Signup creates an account with a lowercased email and returns a token for
// it. A taken email, detected up front or by the unique index on insert,
// yields common.ErrorAlreadyExists.
func (s *AuthService) Signup(ctx context.Context, variant models.Variant, email, password string) (*AuthResult, error) {
	if !variant.Valid() || email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	email = strings.ToLower(email)

	_, err := s.credentials.FindByEmail(ctx, variant, email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup lookup failed", "variant", variant, "error", err)
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	c := &models.Credentials{
		ID:             uuid.NewString(),
		Variant:        variant,
		Email:          email,
		HashedPassword: hash,
	}

	if err := s.credentials.Create(ctx, c); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "signup insert failed", "variant", variant, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account created", "variant", variant, "id", c.ID)
	return s.issue(c.ID, variant)
}

// Login checks the password of the account registered under email, as
// supplied. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, variant models.Variant, email, password string) (*AuthResult, error) {
	if !variant.Valid() {
		return nil, common.ErrorValidation
	}

	c, err := s.credentials.FindByEmail(ctx, variant, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "variant", variant, "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.hasher.Compare(c.HashedPassword, password); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "stored hash unusable", "variant", variant, "id", c.ID, "error", err)
		return nil, common.ErrorInternal
	}

	return s.issue(c.ID, variant)
}

func (s *AuthService) issue(id string, variant models.Variant) (*AuthResult, error) {
	token, err := auth.GenerateToken(id, variant, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, ID: id, Variant: variant}, nil
}
