package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "promptstudio/internal/shared/auth"
)

const minPasswordLength = 8

type Service struct {
	Repo Repo
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, BcryptCost: bcrypt.DefaultCost, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Register creates a free account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, err
	}
	if len(password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Tier:         TierFree,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpsertFromAuth persists a Google identity keyed by email so repeat sign-ins
// land on the same account.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	email, err := normalizeEmail(user.Email)
	if err != nil {
		return User{}, err
	}
	user.Email = email
	if strings.TrimSpace(user.ID) == "" {
		user.ID = uuid.NewString()
	}
	return s.Repo.UpsertByEmail(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

// SetSubscription changes a user's tier. A nil expiry means the subscription
// does not lapse.
func (s *Service) SetSubscription(ctx context.Context, userID string, tier Tier, expiresAt *time.Time) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if !tier.Valid() {
		return User{}, ErrInvalidTier
	}
	if tier == TierFree {
		expiresAt = nil
	}
	if err := s.Repo.SetSubscription(ctx, userID, tier, expiresAt); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) SetAdmin(ctx context.Context, userID string, admin bool) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if err := s.Repo.SetAdmin(ctx, userID, admin); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

// IsPremium loads the user and evaluates the subscription at the current time.
// Guests and unknown users are never premium.
func (s *Service) IsPremium(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsPremium(s.now()), nil
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(user User) (string, error) {
	return sharedauth.SignJWT(sharedauth.Claims{
		Email:            user.Email,
		Name:             user.FullName,
		Picture:          user.PictureURL,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	})
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
