package studioctl

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"promptstudio/internal/wizard"
)

const recommendExample = "  studioctl recommend --q1 explore-ideas --q2 very-complex --q3 creativity,clarity --q4 starting-fresh"

func RecommendCmd() *cobra.Command {
	var (
		bankPath string
		asJSON   bool
		picks    = map[string]*[]string{}
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Recommend a framework for a set of wizard answers",
		Example: recommendExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(bankPath)
			if err != nil {
				return err
			}
			answers := answersFromFlags(bank, picks)
			if err := bank.ValidateAnswers(answers); err != nil {
				return err
			}
			rec := bank.CalculateRecommendation(answers)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	for _, q := range wizard.Questions() {
		picks[q.ID] = cmd.Flags().StringSlice(q.ID, nil, q.Text)
	}
	cmd.Flags().StringVar(&bankPath, "bank", "", "question bank file (default: embedded bank)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recommendation as JSON")
	return cmd
}

// answersFromFlags builds answers in bank order from the per-question flags.
// Flags for questions the bank does not know are passed through so validation
// reports them.
func answersFromFlags(bank *wizard.Bank, picks map[string]*[]string) []wizard.Answer {
	var answers []wizard.Answer
	used := map[string]bool{}
	for _, q := range bank.Questions() {
		used[q.ID] = true
		if p, ok := picks[q.ID]; ok && len(*p) > 0 {
			answers = append(answers, wizard.Answer{QuestionID: q.ID, SelectedOptionIDs: *p})
		}
	}
	var extra []string
	for id, p := range picks {
		if !used[id] && len(*p) > 0 {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		answers = append(answers, wizard.Answer{QuestionID: id, SelectedOptionIDs: *picks[id]})
	}
	return answers
}

func printRecommendation(w io.Writer, rec wizard.Recommendation) {
	title := color.New(color.FgGreen, color.Bold)
	title.Fprintf(w, "%s (%s)  %d%% confidence\n", rec.Name, rec.FrameworkID, rec.Confidence)
	fmt.Fprintf(w, "%s\n", rec.Explanation)
	if len(rec.WhyChosen) > 0 {
		fmt.Fprintln(w, "\nWhy:")
		for _, r := range rec.WhyChosen {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	if len(rec.Alternatives) > 0 {
		fmt.Fprintln(w, "\nAlso consider:")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(w, "  %s (%s)  %d%%\n", alt.Name, alt.FrameworkID, alt.Confidence)
		}
	}
}
