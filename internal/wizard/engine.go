package wizard

import (
	"sort"

	"promptstudio/internal/frameworks"
)

const (
	// AlternativeCutoff is the confidence at or below which runner-up
	// frameworks are attached to a recommendation.
	AlternativeCutoff = 50
	// DefaultConfidence is reported when no framework scored above zero.
	DefaultConfidence = 50
	// DefaultFrameworkID is recommended when no framework scored above zero.
	DefaultFrameworkID = frameworks.ChainOfThought

	maxAlternatives = 2
)

// ScoreVector holds an accumulated score for every catalog framework.
type ScoreVector map[string]int

// Total sums every score, zero scores included.
func (s ScoreVector) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Alternative is a runner-up framework.
type Alternative struct {
	FrameworkID string `json:"frameworkId"`
	Name        string `json:"name"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
}

// Recommendation is the derived wizard result. It is never persisted.
type Recommendation struct {
	FrameworkID  string                 `json:"frameworkId"`
	Name         string                 `json:"name"`
	Confidence   int                    `json:"confidence"`
	Explanation  string                 `json:"explanation"`
	WhyChosen    []string               `json:"whyChosen"`
	Alternatives []Alternative          `json:"alternativeRecommendations,omitempty"`
	Prepopulate  frameworks.FieldValues `json:"prepopulateData,omitempty"`
	Scores       ScoreVector            `json:"scores"`
}

type rankedFramework struct {
	id    string
	score int
}

// Score aggregates option weights into a ScoreVector. Unknown questions and
// options contribute nothing; a repeated option id within one answer counts
// once, and when a question is answered twice the later answer wins.
func (b *Bank) Score(answers []Answer) ScoreVector {
	scores := make(ScoreVector)
	for _, id := range frameworks.IDs() {
		scores[id] = 0
	}
	for _, a := range latestAnswers(answers) {
		q, ok := b.question(a.QuestionID)
		if !ok {
			continue
		}
		seen := make(map[string]bool, len(a.SelectedOptionIDs))
		for _, optID := range a.SelectedOptionIDs {
			if seen[optID] {
				continue
			}
			seen[optID] = true
			opt, ok := q.option(optID)
			if !ok {
				continue
			}
			for fw, w := range opt.Weights {
				if _, known := scores[fw]; known {
					scores[fw] += w
				}
			}
		}
	}
	return scores
}

// CalculateRecommendation scores answers and builds the recommendation. It
// does not validate; callers run ValidateAnswers first. With no positive
// score it returns the default Chain-of-Thought recommendation.
func (b *Bank) CalculateRecommendation(answers []Answer) Recommendation {
	scores := b.Score(answers)
	ranked := rank(scores)
	if len(ranked) == 0 {
		return defaultRecommendation(scores)
	}

	total := scores.Total()
	top := ranked[0]
	rec := Recommendation{
		FrameworkID: top.id,
		Name:        frameworkName(top.id),
		Confidence:  percent(top.score, total),
		Explanation: explanations[top.id],
		Scores:      scores,
	}

	if rec.Confidence <= AlternativeCutoff && len(ranked) > 1 {
		for _, alt := range ranked[1:] {
			if len(rec.Alternatives) == maxAlternatives {
				break
			}
			rec.Alternatives = append(rec.Alternatives, Alternative{
				FrameworkID: alt.id,
				Name:        frameworkName(alt.id),
				Confidence:  percent(alt.score, total),
				Explanation: explanations[alt.id],
			})
		}
	}

	latest := latestAnswers(answers)
	rec.WhyChosen = b.whyChosen(top.id, latest)
	rec.Prepopulate = b.prepopulate(top.id, latest)
	return rec
}

// CalculateRecommendation scores answers against the default bank.
func CalculateRecommendation(answers []Answer) Recommendation {
	return defaultBank.CalculateRecommendation(answers)
}

// rank orders frameworks by descending score, keeping canonical order for
// equal scores, and drops frameworks that scored zero.
func rank(scores ScoreVector) []rankedFramework {
	ids := frameworks.IDs()
	list := make([]rankedFramework, 0, len(ids))
	for _, id := range ids {
		list = append(list, rankedFramework{id: id, score: scores[id]})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})
	out := list[:0]
	for _, r := range list {
		if r.score > 0 {
			out = append(out, r)
		}
	}
	return out
}

// percent rounds score/total*100 half up using integer arithmetic.
func percent(score, total int) int {
	if total <= 0 || score <= 0 {
		return 0
	}
	p := (score*200 + total) / (2 * total)
	if p > 100 {
		return 100
	}
	return p
}

func defaultRecommendation(scores ScoreVector) Recommendation {
	return Recommendation{
		FrameworkID: DefaultFrameworkID,
		Name:        frameworkName(DefaultFrameworkID),
		Confidence:  DefaultConfidence,
		Explanation: defaultExplanation,
		WhyChosen:   []string{defaultReason},
		Scores:      scores,
	}
}

func frameworkName(id string) string {
	if fw, ok := frameworks.ByID(id); ok {
		return fw.Name
	}
	return id
}

// latestAnswers keeps one answer per question, the last one supplied, in the
// order questions were first seen.
func latestAnswers(answers []Answer) []Answer {
	pos := make(map[string]int, len(answers))
	out := make([]Answer, 0, len(answers))
	for _, a := range answers {
		if i, ok := pos[a.QuestionID]; ok {
			out[i] = a
			continue
		}
		pos[a.QuestionID] = len(out)
		out = append(out, a)
	}
	return out
}
