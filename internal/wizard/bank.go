package wizard

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"promptstudio/internal/frameworks"
)

// QuestionType controls how many options an answer may select.
type QuestionType string

const (
	SingleChoice   QuestionType = "single-choice"
	MultipleChoice QuestionType = "multiple-choice"
)

// Option is one selectable answer. Weights map framework ids to how strongly
// choosing the option favors that framework.
type Option struct {
	ID          string         `yaml:"id" json:"id"`
	Text        string         `yaml:"text" json:"text"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Icon        string         `yaml:"icon" json:"icon,omitempty"`
	Weights     map[string]int `yaml:"weights" json:"-"`
}

// Question is a wizard question with its ordered options.
type Question struct {
	ID      string       `yaml:"id" json:"id"`
	Text    string       `yaml:"text" json:"text"`
	Type    QuestionType `yaml:"type" json:"type"`
	Options []Option     `yaml:"options" json:"options"`
}

// Answer is the caller's selection for one question.
type Answer struct {
	QuestionID        string   `json:"questionId"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

// Bank is an immutable, versioned set of questions and weight tables.
type Bank struct {
	version   string
	questions []Question
	index     map[string]int
}

type bankDocument struct {
	Version   string     `yaml:"version"`
	Questions []Question `yaml:"questions"`
}

//go:embed questions.yaml
var defaultBankYAML []byte

var defaultBank = mustLoadBank(defaultBankYAML)

func mustLoadBank(data []byte) *Bank {
	b, err := LoadBank(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("wizard: embedded question bank: %v", err))
	}
	return b
}

// Default returns the question bank embedded in the binary.
func Default() *Bank {
	return defaultBank
}

// DefaultYAML returns the raw embedded question bank document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultBankYAML...)
}

// LoadBank parses and checks a YAML question bank.
func LoadBank(r io.Reader) (*Bank, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc bankDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := checkQuestions(doc.Questions); err != nil {
		return nil, err
	}
	b := &Bank{
		version:   doc.Version,
		questions: doc.Questions,
		index:     make(map[string]int, len(doc.Questions)),
	}
	for i, q := range b.questions {
		b.index[q.ID] = i
	}
	return b, nil
}

func checkQuestions(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("question bank has no questions")
	}
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return errors.New("question with empty id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate question id %q", id)
		}
		seen[id] = true
		if q.Type != SingleChoice && q.Type != MultipleChoice {
			return fmt.Errorf("question %s: unknown type %q", id, q.Type)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: no options", id)
		}
		optSeen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if strings.TrimSpace(opt.ID) == "" {
				return fmt.Errorf("question %s: option with empty id", id)
			}
			if optSeen[opt.ID] {
				return fmt.Errorf("question %s: duplicate option id %q", id, opt.ID)
			}
			optSeen[opt.ID] = true
			for fw, w := range opt.Weights {
				if !frameworks.IsKnown(fw) {
					return fmt.Errorf("question %s option %s: unknown framework %q", id, opt.ID, fw)
				}
				if w < 0 {
					return fmt.Errorf("question %s option %s: negative weight for %s", id, opt.ID, fw)
				}
			}
		}
	}
	return nil
}

// Version identifies the weight tables, e.g. for logging which bank produced
// a recommendation.
func (b *Bank) Version() string { return b.version }

// Questions returns a copy of the bank's questions in order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.clone()
	}
	return out
}

// Question looks up a question by id.
func (b *Bank) Question(id string) (Question, bool) {
	i, ok := b.index[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i].clone(), true
}

func (b *Bank) question(id string) (*Question, bool) {
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return &b.questions[i], true
}

func (q *Question) option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

func (q Question) clone() Question {
	out := q
	out.Options = make([]Option, len(q.Options))
	for i, opt := range q.Options {
		weights := make(map[string]int, len(opt.Weights))
		for k, v := range opt.Weights {
			weights[k] = v
		}
		opt.Weights = weights
		out.Options[i] = opt
	}
	return out
}

// Questions returns the default bank's questions.
func Questions() []Question {
	return defaultBank.Questions()
}
