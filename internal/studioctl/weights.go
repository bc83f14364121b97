package studioctl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"promptstudio/internal/frameworks"
	"promptstudio/internal/wizard"
)

func WeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect and compare question bank weight tables",
	}
	cmd.AddCommand(showWeightsCmd(), compareWeightsCmd())
	return cmd
}

func showWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a question bank and its weights (default: embedded bank)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			bank, err := loadBank(path)
			if err != nil {
				return err
			}
			printBank(cmd.OutOrStdout(), bank)
			return nil
		},
	}
}

func compareWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <old.yaml> [new.yaml]",
		Short: "Show how a weight table change shifts recommendations",
		Long: "Recommends every complete answer set with both banks and reports " +
			"how often the winner changes. new.yaml defaults to the embedded bank.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadBank(args[0])
			if err != nil {
				return err
			}
			newPath := ""
			if len(args) == 2 {
				newPath = args[1]
			}
			candidate, err := loadBank(newPath)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), wizard.Compare(base, candidate))
			return nil
		},
	}
}

func printBank(w io.Writer, bank *wizard.Bank) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Question bank %s\n", bank.Version())
	for _, q := range bank.Questions() {
		fmt.Fprintf(w, "\n%s  %s  (%s)\n", bold.Sprint(q.ID), q.Text, q.Type)
		for _, opt := range q.Options {
			fmt.Fprintf(w, "  %-18s %s\n", opt.ID, formatWeights(opt.Weights))
		}
	}
}

func formatWeights(weights map[string]int) string {
	var parts []string
	for _, id := range frameworks.IDs() {
		if w, ok := weights[id]; ok && w != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", id, w))
		}
	}
	if len(parts) == 0 {
		return color.HiBlackString("(no weight)")
	}
	return strings.Join(parts, " ")
}

func printComparison(w io.Writer, cmp wizard.Comparison) {
	changed := color.New(color.FgGreen)
	if cmp.Changed > 0 {
		changed = color.New(color.FgYellow, color.Bold)
	}
	fmt.Fprintf(w, "Answer sets: %d  changed: %s  invalid under new bank: %d\n\n",
		cmp.Total, changed.Sprint(cmp.Changed), cmp.Invalid)

	fmt.Fprintf(w, "%-18s %8s %8s\n", "framework", "old", "new")
	for _, id := range winnerIDs(cmp) {
		fmt.Fprintf(w, "%-18s %8d %8d\n", id, cmp.OldWins[id], cmp.NewWins[id])
	}

	if len(cmp.Samples) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSample changes:")
	for _, s := range cmp.Samples {
		fmt.Fprintf(w, "  %s  %s -> %s\n", formatAnswers(s.Answers), s.Old, color.YellowString(s.New))
	}
}

// winnerIDs lists catalog frameworks first, then any unknown ids sorted.
func winnerIDs(cmp wizard.Comparison) []string {
	ids := frameworks.IDs()
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	var extra []string
	for _, m := range []map[string]int{cmp.OldWins, cmp.NewWins} {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				extra = append(extra, id)
			}
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

func formatAnswers(answers []wizard.Answer) string {
	parts := make([]string, len(answers))
	for i, a := range answers {
		parts[i] = a.QuestionID + "=" + strings.Join(a.SelectedOptionIDs, ",")
	}
	return strings.Join(parts, " ")
}
