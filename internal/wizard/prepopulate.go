package wizard

import "promptstudio/internal/frameworks"

type seed = frameworks.FieldValues

var (
	scalar = frameworks.Scalar
	list   = frameworks.List
)

// prepopulateTables maps framework -> option id -> field seeds.
var prepopulateTables = map[string]map[string]seed{
	frameworks.TreeOfThought: {
		"explore-ideas": {"objective": scalar("Explore several distinct directions before committing to one")},
		"solve-problem": {"objective": scalar("Find the most effective solution to the problem")},
		"moderate":      {"approaches": scalar("3")},
		"very-complex":  {"approaches": scalar("5")},
		"accuracy":      {"criteria": list("Accuracy")},
		"creativity":    {"criteria": list("Originality", "Feasibility")},
		"clarity":       {"criteria": list("Clarity")},
		"expertise":     {"criteria": list("Depth of expertise")},
		"polish":        {"criteria": list("Quality of execution")},
	},
	frameworks.ChainOfThought: {
		"solve-problem": {"steps": list("Restate the problem", "Identify the key facts", "Work through each step", "Check the result")},
		"very-complex":  {"steps": list("Break the problem into sub-problems", "Solve each sub-problem", "Combine the partial results", "Verify the final answer")},
		"clarity":       {"outputFormat": scalar("A short numbered list of steps followed by a one-sentence answer")},
		"accuracy":      {"outputFormat": scalar("The final answer followed by a note on how it was verified")},
	},
	frameworks.SelfConsistency: {
		"verify-answer": {"aggregation": scalar("majority vote")},
		"simple":        {"paths": scalar("3")},
		"moderate":      {"paths": scalar("3")},
		"very-complex":  {"paths": scalar("5")},
		"accuracy":      {"aggregation": scalar("majority vote, flagging any attempt that disagrees")},
	},
	frameworks.RolePrompting: {
		"expert-perspective": {"tone": scalar("Authoritative but approachable")},
		"simple":             {"constraints": list("Keep the response concise")},
		"clarity":            {"tone": scalar("Clear and direct"), "audience": scalar("Non-specialist readers")},
		"expertise":          {"constraints": list("Refer to established practice where relevant")},
		"creativity":         {"tone": scalar("Imaginative and engaging")},
	},
	frameworks.Reflection: {
		"improve-draft": {"task": scalar("Improve the provided draft")},
		"refinement":    {"iterations": scalar("2")},
		"very-complex":  {"iterations": scalar("3")},
		"accuracy":      {"criteria": list("Factual accuracy")},
		"clarity":       {"criteria": list("Clarity")},
		"polish":        {"criteria": list("Clarity", "Concision", "Tone", "Correctness")},
	},
}

// prepopulate derives a form seed for the winning framework from the answers,
// walking questions in bank order. The first scalar for a field wins; list
// seeds are merged without duplicates. When the tables yield nothing the
// framework's schema defaults are used; nil means no seed.
func (b *Bank) prepopulate(frameworkID string, answers []Answer) frameworks.FieldValues {
	table := prepopulateTables[frameworkID]
	selected := selectedSet(answers)

	out := frameworks.FieldValues{}
	for _, q := range b.questions {
		picked := selected[q.ID]
		if len(picked) == 0 {
			continue
		}
		for _, opt := range q.Options {
			if !picked[opt.ID] {
				continue
			}
			for field, value := range table[opt.ID] {
				mergeSeed(out, field, value)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	if fw, ok := frameworks.ByID(frameworkID); ok {
		if defaults := fw.Defaults(); len(defaults) > 0 {
			return defaults
		}
	}
	return nil
}

func mergeSeed(out frameworks.FieldValues, field string, value frameworks.Value) {
	existing, ok := out[field]
	if !ok {
		if value.IsList() {
			out[field] = frameworks.List(value.Items()...)
		} else {
			out[field] = value
		}
		return
	}
	if !existing.IsList() || !value.IsList() {
		return
	}
	items := existing.Items()
	for _, item := range value.Items() {
		if !contains(items, item) {
			items = append(items, item)
		}
	}
	out[field] = frameworks.List(items...)
}
