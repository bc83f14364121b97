package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidTier        = errors.New("invalid tier")
)

type Repo interface {
	// Create inserts a new user; a duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, user User) error
	// UpsertByEmail inserts the user or refreshes name and picture of the
	// existing account with the same email, returning the stored record.
	UpsertByEmail(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	SetSubscription(ctx context.Context, userID string, tier Tier, expiresAt *time.Time) error
	SetAdmin(ctx context.Context, userID string, admin bool) error
}
