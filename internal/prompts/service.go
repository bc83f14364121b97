package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"promptstudio/internal/analytics"
	"promptstudio/internal/frameworks"
	"promptstudio/internal/shared/metrics"
	"promptstudio/internal/usage"
)

// Entitlements gates saving and exporting.
type Entitlements interface {
	CanCreatePrompt(ctx context.Context, userID string) (usage.Usage, error)
	RequirePremium(ctx context.Context, userID string) error
}

// EventRecorder receives best-effort product events.
type EventRecorder interface {
	Record(ctx context.Context, userID string, eventType analytics.EventType, frameworkID string)
}

type Service struct {
	Repo   Repo
	Usage  Entitlements
	Events EventRecorder
	Now    func() time.Time
}

func NewService(repo Repo, entitlements Entitlements, events EventRecorder) *Service {
	return &Service{Repo: repo, Usage: entitlements, Events: events, Now: time.Now}
}

// Generate renders a prompt without persisting it.
func (s *Service) Generate(ctx context.Context, userID, frameworkID string, fields frameworks.FieldValues) (string, error) {
	content, err := frameworks.Generate(frameworkID, fields)
	if err != nil {
		return "", err
	}
	metrics.IncPromptGenerated()
	s.record(ctx, userID, analytics.PromptGenerated, frameworkID)
	return content, nil
}

// Save generates the prompt, checks the caller may store another one and
// persists it.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Prompt, error) {
	title := strings.TrimSpace(in.Title)
	if utf8.RuneCountInString(title) > maxTitleRunes {
		return Prompt{}, ErrTitleTooLong
	}
	content, err := frameworks.Generate(in.FrameworkID, in.Fields)
	if err != nil {
		return Prompt{}, err
	}
	if _, err := s.Usage.CanCreatePrompt(ctx, userID); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			metrics.IncLimitReached()
		}
		return Prompt{}, err
	}
	if title == "" {
		fw, _ := frameworks.ByID(in.FrameworkID)
		title = fw.Name + " prompt"
	}

	p := Prompt{
		ID:          uuid.NewString(),
		UserID:      userID,
		FrameworkID: in.FrameworkID,
		Title:       title,
		Fields:      in.Fields.Clone(),
		Content:     content,
		CreatedAt:   s.now(),
	}
	if p.Fields == nil {
		p.Fields = frameworks.FieldValues{}
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Prompt{}, fmt.Errorf("store prompt: %w", err)
	}
	metrics.IncPromptSaved()
	s.record(ctx, userID, analytics.PromptSaved, p.FrameworkID)
	return p, nil
}

// List returns the caller's prompts newest first.
func (s *Service) List(ctx context.Context, userID string, page Page) ([]Prompt, error) {
	return s.Repo.List(ctx, userID, page.normalized())
}

func (s *Service) Get(ctx context.Context, userID, id string) (Prompt, error) {
	return s.Repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

// CountForUser backs the usage service's free-tier check.
func (s *Service) CountForUser(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountForUser(ctx, userID)
}

// Export renders a saved prompt as a downloadable file. Premium only.
func (s *Service) Export(ctx context.Context, userID, id string, format Format) (ExportFile, error) {
	if !format.Valid() {
		return ExportFile{}, ErrInvalidFormat
	}
	if err := s.Usage.RequirePremium(ctx, userID); err != nil {
		return ExportFile{}, err
	}
	p, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return ExportFile{}, err
	}
	file, err := render(p, format)
	if err != nil {
		return ExportFile{}, err
	}
	metrics.IncPromptExported()
	s.record(ctx, userID, analytics.PromptExported, p.FrameworkID)
	return file, nil
}

func (s *Service) record(ctx context.Context, userID string, t analytics.EventType, frameworkID string) {
	if s.Events == nil {
		return
	}
	s.Events.Record(ctx, userID, t, frameworkID)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
