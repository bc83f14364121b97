package usage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptstudio/internal/shared/config"
	"promptstudio/internal/users"
)

// UserLookup loads account records.
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// PromptCounter reports how many prompts a user has saved.
type PromptCounter interface {
	CountForUser(ctx context.Context, userID string) (int, error)
}

// Service computes entitlements from the user record and saved prompt count.
type Service struct {
	Users     UserLookup
	Prompts   PromptCounter
	FreeLimit int
	Now       func() time.Time
}

// NewService constructs a Service. A non-positive freeLimit falls back to
// config.DefaultFreePromptLimit.
func NewService(userLookup UserLookup, prompts PromptCounter, freeLimit int) *Service {
	if freeLimit <= 0 {
		freeLimit = config.DefaultFreePromptLimit
	}
	return &Service{Users: userLookup, Prompts: prompts, FreeLimit: freeLimit, Now: time.Now}
}

// Get returns the current usage for a user. Guests get a zero-limit guest plan.
func (s *Service) Get(ctx context.Context, userID string) (Usage, error) {
	if isGuest(userID) {
		return Usage{Plan: PlanGuest}, nil
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Usage{Plan: PlanGuest}, nil
		}
		return Usage{}, fmt.Errorf("load user: %w", err)
	}
	used, err := s.Prompts.CountForUser(ctx, userID)
	if err != nil {
		return Usage{}, fmt.Errorf("count prompts: %w", err)
	}

	if user.IsPremium(s.now()) {
		return Usage{
			Plan:            PlanPremium,
			Limit:           Unlimited,
			Used:            used,
			Remaining:       Unlimited,
			CanExport:       true,
			CanSaveCriteria: true,
		}, nil
	}
	remaining := s.FreeLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return Usage{
		Plan:      PlanFree,
		Limit:     s.FreeLimit,
		Used:      used,
		Remaining: remaining,
	}, nil
}

// CanCreatePrompt returns ErrLoginRequired for guests and ErrLimitReached when
// the free cap is used up.
func (s *Service) CanCreatePrompt(ctx context.Context, userID string) (Usage, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	if u.Plan == PlanGuest {
		return u, ErrLoginRequired
	}
	if !u.CanSave() {
		return u, ErrLimitReached
	}
	return u, nil
}

// RequirePremium returns ErrLoginRequired for guests and ErrPremiumRequired
// for free accounts.
func (s *Service) RequirePremium(ctx context.Context, userID string) error {
	if isGuest(userID) {
		return ErrLoginRequired
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrLoginRequired
		}
		return fmt.Errorf("load user: %w", err)
	}
	if !user.IsPremium(s.now()) {
		return ErrPremiumRequired
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func isGuest(userID string) bool {
	return strings.TrimSpace(userID) == "" || strings.HasPrefix(userID, "guest:")
}
