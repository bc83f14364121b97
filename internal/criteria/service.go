package criteria

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"promptstudio/internal/frameworks"
)

// PremiumChecker gates creating criteria.
type PremiumChecker interface {
	RequirePremium(ctx context.Context, userID string) error
}

type Service struct {
	Repo    Repo
	Premium PremiumChecker
	Now     func() time.Time
}

func NewService(repo Repo, premium PremiumChecker) *Service {
	return &Service{Repo: repo, Premium: premium, Now: time.Now}
}

// Catalog is the criteria list a form should offer: the built-in options
// followed by the user's own.
type Catalog struct {
	BuiltIn []string    `json:"builtIn"`
	Custom  []Criterion `json:"custom"`
}

// ListForUser works for every identity; guests simply have no custom entries.
func (s *Service) ListForUser(ctx context.Context, userID string) (Catalog, error) {
	out := Catalog{BuiltIn: builtIn(), Custom: []Criterion{}}
	if userID == "" || strings.HasPrefix(userID, "guest:") {
		return out, nil
	}
	custom, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return Catalog{}, err
	}
	out.Custom = custom
	return out, nil
}

func (s *Service) Create(ctx context.Context, userID, name, description string) (Criterion, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || utf8.RuneCountInString(name) > maxNameRunes {
		return Criterion{}, ErrInvalidName
	}
	if utf8.RuneCountInString(description) > maxDescriptionRunes {
		description = string([]rune(description)[:maxDescriptionRunes])
	}
	if err := s.Premium.RequirePremium(ctx, userID); err != nil {
		return Criterion{}, err
	}
	for _, b := range builtIn() {
		if strings.EqualFold(b, name) {
			return Criterion{}, ErrDuplicate
		}
	}

	c := Criterion{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Criterion{}, err
		}
		return Criterion{}, fmt.Errorf("store criterion: %w", err)
	}
	return c, nil
}

// Delete removes a criterion owned by userID.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func builtIn() []string {
	fw, ok := frameworks.ByID(frameworks.TreeOfThought)
	if !ok {
		return []string{}
	}
	field, ok := fw.Field("criteria")
	if !ok {
		return []string{}
	}
	return append([]string{}, field.Options...)
}
