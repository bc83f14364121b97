package frameworks

import (
	"fmt"
	"strings"
)

// Validate checks values against the required fields of a framework.
func Validate(frameworkID string, values FieldValues) error {
	fw, ok := ByID(frameworkID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFrameworkType, frameworkID)
	}
	var missing []string
	for _, name := range fw.RequiredFields() {
		if values == nil || values[name].Empty() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{FrameworkID: frameworkID, Fields: missing}
	}
	return nil
}

// Generate validates values and renders the prompt text for a framework.
// The output depends only on its inputs.
func Generate(frameworkID string, values FieldValues) (string, error) {
	if err := Validate(frameworkID, values); err != nil {
		return "", err
	}
	fw := catalog[catalogIndex[frameworkID]]
	return fw.render(values), nil
}

type promptBuilder struct {
	b strings.Builder
}

func (p *promptBuilder) line(format string, args ...any) {
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *promptBuilder) optional(label, value string) {
	if value == "" {
		return
	}
	p.line("%s: %s", label, value)
}

func (p *promptBuilder) blank() {
	p.b.WriteByte('\n')
}

func (p *promptBuilder) String() string {
	return strings.TrimRight(p.b.String(), "\n")
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func renderTreeOfThought(v FieldValues) string {
	var p promptBuilder
	p.line("You are %s.", v.text("role"))
	p.blank()
	p.line("Objective: %s", v.text("objective"))
	p.optional("Context", v.text("context"))
	p.blank()
	p.line("Use a Tree-of-Thought approach. Generate %s different approaches to achieve this objective. For each approach:", v.text("approaches"))
	p.line("1. Describe the approach and the reasoning behind it.")
	p.line("2. Explore its likely outcomes, risks and trade-offs.")
	p.line("3. Evaluate it against the following criteria: %s.", v.text("criteria"))
	p.blank()
	p.line("After exploring every branch, compare the approaches, prune the weakest ones and recommend the best path forward with a clear justification.")
	return p.String()
}

func renderChainOfThought(v FieldValues) string {
	var p promptBuilder
	p.line("You are %s.", v.text("role"))
	p.blank()
	p.line("Problem: %s", v.text("problem"))
	p.optional("Context", v.text("context"))
	p.blank()
	p.line("Think through this problem step by step before answering.")
	if steps := v.text("steps"); steps != "" {
		p.line("Follow these reasoning steps: %s.", steps)
	} else {
		p.line("Break the problem into logical steps, state any assumptions, and show your reasoning for each step.")
	}
	p.line("Then state your final answer clearly.")
	if format := v.text("outputFormat"); format != "" {
		p.line("Format the final answer as: %s.", format)
	}
	return p.String()
}

func renderSelfConsistency(v FieldValues) string {
	var p promptBuilder
	p.line("You are %s.", v.text("role"))
	p.blank()
	p.line("Question: %s", v.text("question"))
	p.optional("Context", v.text("context"))
	p.blank()
	p.line("Solve this question independently %s times, using a different line of reasoning each time. Label each attempt (Attempt 1, Attempt 2, ...) and show the reasoning that leads to its answer.", v.text("paths"))
	p.blank()
	p.line("Then compare the answers, identify where they agree and disagree, and select the final answer by %s. Report the final answer together with how many attempts support it.", orDefault(v.text("aggregation"), "majority vote"))
	return p.String()
}

func renderRolePrompting(v FieldValues) string {
	var p promptBuilder
	if expertise := v.text("expertise"); expertise != "" {
		p.line("You are %s with expertise in %s.", v.text("role"), expertise)
	} else {
		p.line("You are %s.", v.text("role"))
	}
	p.blank()
	p.line("Task: %s", v.text("task"))
	p.optional("Audience", v.text("audience"))
	p.optional("Tone", v.text("tone"))
	p.optional("Constraints", v.text("constraints"))
	p.blank()
	p.line("Respond fully in character, drawing on the knowledge, vocabulary and judgement this role would bring to the task.")
	return p.String()
}

func renderReflection(v FieldValues) string {
	var p promptBuilder
	p.line("You are %s.", v.text("role"))
	p.blank()
	p.line("Task: %s", v.text("task"))
	draft := v.text("draft")
	if draft != "" {
		p.blank()
		p.line("Initial draft:")
		p.line("%s", draft)
	}
	p.blank()
	if draft != "" {
		p.line("Start from the initial draft above.")
	} else {
		p.line("Write an initial response to the task.")
	}
	p.line("Then critically review it against these criteria: %s.", v.text("criteria"))
	p.line("Identify specific weaknesses and revise the response to address them.")
	p.line("Repeat this review and revision cycle %s times, then present the final revised version along with a short summary of what changed in each round.", orDefault(v.text("iterations"), "2"))
	return p.String()
}
