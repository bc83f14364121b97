package wizard

import "promptstudio/internal/frameworks"

const (
	maxReasons = 3

	defaultExplanation = "Chain-of-Thought is a versatile framework that works well for most tasks: it asks the model to reason step by step, which makes answers easier to follow and check."
	defaultReason      = "Chain-of-Thought is a versatile starting point when no other framework clearly fits."
)

var explanations = map[string]string{
	frameworks.TreeOfThought:   "Tree-of-Thought has the model explore several approaches side by side, evaluate each one and keep the strongest. It suits open-ended, complex problems where the first idea is rarely the best.",
	frameworks.ChainOfThought:  "Chain-of-Thought has the model reason through the problem one explicit step at a time, which improves accuracy on structured problems and makes the answer easy to verify.",
	frameworks.SelfConsistency: "Self-Consistency has the model solve the same question along several independent paths and keep the answer they agree on, which reduces one-off reasoning mistakes.",
	frameworks.RolePrompting:   "Role Prompting gives the model a specific expert persona so the response carries that expert's knowledge, vocabulary and judgement.",
	frameworks.Reflection:      "Reflection has the model critique its own output against explicit criteria and revise it over several rounds, which is ideal for polishing existing work.",
}

// reasonRule adds a reason when the option was selected and the winning
// framework is one of the listed ones.
type reasonRule struct {
	frameworks []string
	questionID string
	optionID   string
	reason     string
}

var reasonRules = []reasonRule{
	{frameworks: []string{frameworks.TreeOfThought}, questionID: "q1", optionID: "explore-ideas", reason: "You want to explore several ideas before committing to one."},
	{frameworks: []string{frameworks.TreeOfThought}, questionID: "q2", optionID: "very-complex", reason: "Complex tasks benefit from comparing multiple solution paths."},
	{frameworks: []string{frameworks.TreeOfThought}, questionID: "q3", optionID: "creativity", reason: "Branching exploration surfaces more original options."},
	{frameworks: []string{frameworks.TreeOfThought, frameworks.ChainOfThought}, questionID: "q4", optionID: "have-outline", reason: "An outline gives the reasoning a structure to build on."},

	{frameworks: []string{frameworks.ChainOfThought}, questionID: "q1", optionID: "solve-problem", reason: "Well-defined problems are solved reliably by reasoning step by step."},
	{frameworks: []string{frameworks.ChainOfThought}, questionID: "q2", optionID: "moderate", reason: "A task with a few connected steps maps naturally onto an explicit reasoning chain."},
	{frameworks: []string{frameworks.ChainOfThought}, questionID: "q3", optionID: "clarity", reason: "Showing each step makes the answer easy to follow."},

	{frameworks: []string{frameworks.SelfConsistency}, questionID: "q1", optionID: "verify-answer", reason: "You need an answer that holds up when checked several ways."},
	{frameworks: []string{frameworks.SelfConsistency, frameworks.ChainOfThought}, questionID: "q3", optionID: "accuracy", reason: "Accuracy matters most, so the prompt asks the model to check its own reasoning."},
	{frameworks: []string{frameworks.SelfConsistency}, questionID: "q4", optionID: "have-answer", reason: "Independent reasoning paths are a good way to confirm an existing answer."},

	{frameworks: []string{frameworks.RolePrompting}, questionID: "q1", optionID: "expert-perspective", reason: "You asked for a specific expert's perspective."},
	{frameworks: []string{frameworks.RolePrompting}, questionID: "q3", optionID: "expertise", reason: "A well-defined persona brings domain vocabulary and judgement."},
	{frameworks: []string{frameworks.RolePrompting}, questionID: "q2", optionID: "simple", reason: "Simple tasks mostly need the right voice rather than elaborate reasoning."},

	{frameworks: []string{frameworks.Reflection}, questionID: "q1", optionID: "improve-draft", reason: "You want to improve something that already exists."},
	{frameworks: []string{frameworks.Reflection}, questionID: "q2", optionID: "refinement", reason: "Iterative critique and revision is built for refinement."},
	{frameworks: []string{frameworks.Reflection}, questionID: "q3", optionID: "polish", reason: "Review rounds against explicit criteria produce polished results."},
	{frameworks: []string{frameworks.Reflection}, questionID: "q4", optionID: "have-draft", reason: "Your draft gives the model a concrete starting point to critique."},
}

func (b *Bank) whyChosen(winner string, answers []Answer) []string {
	selected := selectedSet(answers)
	var out []string
	for _, rule := range reasonRules {
		if len(out) == maxReasons {
			break
		}
		if !contains(rule.frameworks, winner) {
			continue
		}
		if selected[rule.questionID][rule.optionID] {
			out = append(out, rule.reason)
		}
	}
	if len(out) == 0 {
		out = append(out, "Your answers favor "+frameworkName(winner)+" over the other frameworks.")
	}
	return out
}

func selectedSet(answers []Answer) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(answers))
	for _, a := range answers {
		opts := make(map[string]bool, len(a.SelectedOptionIDs))
		for _, id := range a.SelectedOptionIDs {
			opts[id] = true
		}
		out[a.QuestionID] = opts
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
