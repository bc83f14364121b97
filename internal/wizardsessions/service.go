package wizardsessions

import (
	"context"
	"fmt"
	"time"

	"promptstudio/internal/analytics"
	"promptstudio/internal/shared/metrics"
	"promptstudio/internal/wizard"
)

// EventRecorder receives best-effort product events.
type EventRecorder interface {
	Record(ctx context.Context, userID string, eventType analytics.EventType, frameworkID string)
}

// State is the wizard progress for one session.
type State struct {
	Answers  []wizard.Answer `json:"answers"`
	Answered int             `json:"answered"`
	Total    int             `json:"total"`
	Complete bool            `json:"complete"`
}

type Service struct {
	Store  Store
	Bank   *wizard.Bank
	Events EventRecorder
}

func NewService(store Store, bank *wizard.Bank, events EventRecorder) *Service {
	if bank == nil {
		bank = wizard.Default()
	}
	return &Service{Store: store, Bank: bank, Events: events}
}

func (s *Service) Questions() []wizard.Question {
	return s.Bank.Questions()
}

// Get returns the recorded answers in question order.
func (s *Service) Get(ctx context.Context, key string) (State, error) {
	answers, err := s.Store.Answers(ctx, key)
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	return s.state(answers), nil
}

// SetAnswer validates one answer against the bank and records it, replacing
// any earlier answer to the same question.
func (s *Service) SetAnswer(ctx context.Context, key string, a wizard.Answer) (State, error) {
	a.SelectedOptionIDs = dedupe(a.SelectedOptionIDs)
	if err := s.Bank.ValidateAnswer(a); err != nil {
		return State{}, err
	}
	if err := s.Store.SetAnswer(ctx, key, a); err != nil {
		return State{}, fmt.Errorf("store answer: %w", err)
	}
	return s.Get(ctx, key)
}

func (s *Service) Reset(ctx context.Context, key string) error {
	if err := s.Store.Reset(ctx, key); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

// Recommend validates a complete answer set and scores it. With nil answers
// the session's recorded answers are used.
func (s *Service) Recommend(ctx context.Context, key string, answers []wizard.Answer) (wizard.Recommendation, error) {
	if answers == nil {
		state, err := s.Get(ctx, key)
		if err != nil {
			return wizard.Recommendation{}, err
		}
		answers = state.Answers
	}
	if err := s.Bank.ValidateAnswers(answers); err != nil {
		return wizard.Recommendation{}, err
	}

	start := time.Now()
	rec := s.Bank.CalculateRecommendation(answers)
	metrics.ObserveRecommendation(rec.FrameworkID, time.Since(start))
	if s.Events != nil {
		s.Events.Record(ctx, key, analytics.WizardCompleted, rec.FrameworkID)
	}
	return rec, nil
}

func (s *Service) state(answers []wizard.Answer) State {
	byID := make(map[string]wizard.Answer, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a
	}
	questions := s.Bank.Questions()
	out := State{Answers: []wizard.Answer{}, Total: len(questions)}
	for _, q := range questions {
		if a, ok := byID[q.ID]; ok {
			out.Answers = append(out.Answers, a)
		}
	}
	out.Answered = len(out.Answers)
	out.Complete = out.Answered == out.Total
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
