package analytics

import "time"

// EventType names a tracked product event.
type EventType string

const (
	WizardCompleted EventType = "wizard_completed"
	PromptGenerated EventType = "prompt_generated"
	PromptSaved     EventType = "prompt_saved"
	PromptExported  EventType = "prompt_exported"
)

type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        EventType `json:"type"`
	FrameworkID string    `json:"frameworkId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary aggregates events recorded at or after Since.
type Summary struct {
	Since       time.Time         `json:"since"`
	Total       int               `json:"total"`
	ByType      map[EventType]int `json:"byType"`
	ByFramework map[string]int    `json:"byFramework"`
}

func newSummary(since time.Time) Summary {
	return Summary{
		Since:       since,
		ByType:      map[EventType]int{},
		ByFramework: map[string]int{},
	}
}

func (s *Summary) add(t EventType, frameworkID string, n int) {
	s.Total += n
	s.ByType[t] += n
	if frameworkID != "" {
		s.ByFramework[frameworkID] += n
	}
}
