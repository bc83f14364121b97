package wizard

import "sort"

const maxComparisonSamples = 10

// Change is one answer set whose recommendation differs between two banks.
type Change struct {
	Answers []Answer `json:"answers"`
	Old     string   `json:"old"`
	New     string   `json:"new"`
}

// Comparison summarizes how a new weight table shifts recommendations across
// every complete answer set of the old bank.
type Comparison struct {
	Total   int            `json:"total"`
	Changed int            `json:"changed"`
	Invalid int            `json:"invalid"`
	OldWins map[string]int `json:"oldWins"`
	NewWins map[string]int `json:"newWins"`
	Samples []Change       `json:"samples,omitempty"`
}

// Compare enumerates every valid answer set of base (one option for a
// single-choice question, any non-empty subset for a multiple-choice one)
// and recommends with both banks. Answer sets candidate rejects are
// counted as Invalid.
func Compare(base, candidate *Bank) Comparison {
	cmp := Comparison{OldWins: map[string]int{}, NewWins: map[string]int{}}
	choices := make([][][]string, len(base.questions))
	for i, q := range base.questions {
		choices[i] = selections(q)
	}

	current := make([]Answer, len(base.questions))
	var walk func(i int)
	walk = func(i int) {
		if i == len(base.questions) {
			cmp.Total++
			a := base.CalculateRecommendation(current)
			cmp.OldWins[a.FrameworkID]++
			if err := candidate.ValidateAnswers(current); err != nil {
				cmp.Invalid++
				return
			}
			b := candidate.CalculateRecommendation(current)
			cmp.NewWins[b.FrameworkID]++
			if a.FrameworkID != b.FrameworkID {
				cmp.Changed++
				if len(cmp.Samples) < maxComparisonSamples {
					cmp.Samples = append(cmp.Samples, Change{
						Answers: copyAnswers(current),
						Old:     a.FrameworkID,
						New:     b.FrameworkID,
					})
				}
			}
			return
		}
		for _, sel := range choices[i] {
			current[i] = Answer{QuestionID: base.questions[i].ID, SelectedOptionIDs: sel}
			walk(i + 1)
		}
	}
	walk(0)
	return cmp
}

func selections(q Question) [][]string {
	if q.Type == SingleChoice {
		out := make([][]string, len(q.Options))
		for i, opt := range q.Options {
			out[i] = []string{opt.ID}
		}
		return out
	}
	n := len(q.Options)
	out := make([][]string, 0, (1<<n)-1)
	for mask := 1; mask < 1<<n; mask++ {
		var sel []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sel = append(sel, q.Options[i].ID)
			}
		}
		out = append(out, sel)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) < len(out[j]) })
	return out
}

func copyAnswers(in []Answer) []Answer {
	out := make([]Answer, len(in))
	for i, a := range in {
		out[i] = Answer{
			QuestionID:        a.QuestionID,
			SelectedOptionIDs: append([]string(nil), a.SelectedOptionIDs...),
		}
	}
	return out
}
