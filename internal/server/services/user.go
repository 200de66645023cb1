// Package services contains server-side business logic. This file implements
// UserService: registration, credential login, token authentication, and
// session revocation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/dbx"
	"github.com/akosarev/taskvault/internal/server/auth"
	"github.com/akosarev/taskvault/internal/server/config"
	"github.com/akosarev/taskvault/internal/server/models"
	"github.com/akosarev/taskvault/internal/server/repositories/repomanager"
)

// MinPasswordLength is the weakest password Register accepts.
const MinPasswordLength = 6

// UserService provides authentication-related operations:
//   - Register: create a user and issue its first session token
//   - Login: verify credentials and mint a token
//   - Authenticate: resolve a presented token to a user
//   - Logout: revoke exactly the presented token
//   - DeleteAccount: destroy the user aggregate with all its sessions
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
}

// NewUserService constructs a UserService using repositories and server config.
// The signing secret is captured here once; nothing reads it from config later.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register validates the email shape and password strength, hashes the
// password, persists the user, and issues the first session token. Hashing
// happens here and nowhere else; no other mutation path can touch the stored
// hash. A duplicate email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if !validEmail(email) {
		return nil, "", common.ErrorValidation
	}
	if len(password) < MinPasswordLength {
		return nil, "", common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash}
	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueSessionToken(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials and, on success, issues and stores a new
// session token. An unknown email and a wrong password both yield the same
// common.ErrorInvalidCredentials so responses cannot be used to probe for
// accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.issueSessionToken(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate resolves a presented token to its user. The token must carry a
// valid signature, reference an existing user, and still be listed in that
// user's sessions; any failure collapses into common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, access, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if access != common.AccessIntentAuth {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := s.repomanager.Tokens(s.db).Has(ctx, user.ID, token)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		// structurally valid but revoked (or never stored for this user)
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Logout removes exactly the presented token from the user's sessions,
// leaving other logins intact. Removing a token that a concurrent logout
// already removed is not an error.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	err := s.repomanager.Tokens(s.db).Remove(ctx, userID, token)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}
	return nil
}

// DeleteAccount removes the user and, through the schema's cascade, every
// session and task it owns. The whole aggregate goes in one transaction.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
}

func (s *UserService) issueSessionToken(ctx context.Context, userID string) (string, error) {
	token, err := auth.IssueToken(userID, common.AccessIntentAuth, s.jwtSecret)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Tokens(s.db).Add(ctx, userID, common.AccessIntentAuth, token); err != nil {
		return "", err
	}
	return token, nil
}
