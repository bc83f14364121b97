package wizard

import (
	"bytes"
	"strings"
	"testing"

	"promptstudio/internal/frameworks"
)

func TestDefaultBankShape(t *testing.T) {
	qs := Questions()
	if len(qs) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(qs))
	}
	wantTypes := []QuestionType{SingleChoice, SingleChoice, MultipleChoice, SingleChoice}
	for i, q := range qs {
		if q.Type != wantTypes[i] {
			t.Fatalf("question %s: type %s, want %s", q.ID, q.Type, wantTypes[i])
		}
		for _, opt := range q.Options {
			if opt.Text == "" {
				t.Fatalf("question %s option %s has no text", q.ID, opt.ID)
			}
		}
	}
	if Default().Version() == "" {
		t.Fatal("expected a bank version")
	}
}

func TestQuestionsReturnsCopies(t *testing.T) {
	qs := Questions()
	qs[0].Text = "changed"
	qs[0].Options[0].Weights[frameworks.Reflection] = 100

	again := Questions()
	if again[0].Text == "changed" {
		t.Fatal("question text leaked back into the bank")
	}
	if again[0].Options[0].Weights[frameworks.Reflection] == 100 {
		t.Fatal("weights leaked back into the bank")
	}
}

func TestLoadBankRoundTripsEmbeddedYAML(t *testing.T) {
	b, err := LoadBank(bytes.NewReader(DefaultYAML()))
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(b.Questions()) != len(Questions()) {
		t.Fatal("reloaded bank differs from default")
	}
}

func TestLoadBankRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"no questions": `version: x
questions: []`,
		"unknown field": `version: x
extra: 1
questions: []`,
		"duplicate question": `questions:
  - {id: a, text: A, type: single-choice, options: [{id: o, text: O}]}
  - {id: a, text: B, type: single-choice, options: [{id: o, text: O}]}`,
		"bad type": `questions:
  - {id: a, text: A, type: free-text, options: [{id: o, text: O}]}`,
		"no options": `questions:
  - {id: a, text: A, type: single-choice, options: []}`,
		"duplicate option": `questions:
  - {id: a, text: A, type: single-choice, options: [{id: o, text: O}, {id: o, text: P}]}`,
		"unknown framework": `questions:
  - {id: a, text: A, type: single-choice, options: [{id: o, text: O, weights: {zero-shot: 1}}]}`,
		"negative weight": `questions:
  - {id: a, text: A, type: single-choice, options: [{id: o, text: O, weights: {cot: -1}}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadBank(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestCompareIdenticalBanks(t *testing.T) {
	cmp := Compare(Default(), Default())
	if cmp.Total != 2480 {
		t.Fatalf("expected 2480 answer sets, got %d", cmp.Total)
	}
	if cmp.Changed != 0 || cmp.Invalid != 0 || len(cmp.Samples) != 0 {
		t.Fatalf("identical banks should not differ: %+v", cmp)
	}
}

func TestCompareDetectsShift(t *testing.T) {
	// expert-perspective now pushes hard towards reflection.
	doc := strings.Replace(string(DefaultYAML()), "weights: {role: 3}", "weights: {reflection: 9}", 1)
	changed, err := LoadBank(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	cmp := Compare(Default(), changed)
	if cmp.Changed == 0 {
		t.Fatal("expected some recommendations to shift")
	}
	if len(cmp.Samples) == 0 || len(cmp.Samples) > 10 {
		t.Fatalf("unexpected sample count %d", len(cmp.Samples))
	}
	for _, s := range cmp.Samples {
		if s.Old == s.New {
			t.Fatalf("sample did not change: %+v", s)
		}
	}
}
