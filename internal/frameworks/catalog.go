package frameworks

// Framework ids in canonical order. Ties in wizard scoring resolve in this order.
const (
	TreeOfThought   = "tot"
	ChainOfThought  = "cot"
	SelfConsistency = "self-consistency"
	RolePrompting   = "role"
	Reflection      = "reflection"
)

// FieldType is the kind of input a framework field expects.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldNumber      FieldType = "number"
	FieldMultiSelect FieldType = "multi-select"
)

// Field describes one input of a framework form.
type Field struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty"`
	Options      []string  `json:"options,omitempty"`
}

// Framework is a prompt-construction strategy with its form schema.
type Framework struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`

	render func(FieldValues) string
}

var criteriaOptions = []string{"Accuracy", "Feasibility", "Cost", "Speed", "Originality", "Clarity", "Risk"}

var catalog = []Framework{
	{
		ID:          TreeOfThought,
		Name:        "Tree-of-Thought",
		Description: "Explores several solution paths in parallel, evaluates each branch and keeps the most promising one.",
		Fields: []Field{
			{Name: "role", Label: "Role", Type: FieldText, Required: true, Placeholder: "a senior product strategist"},
			{Name: "objective", Label: "Objective", Type: FieldTextarea, Required: true, Placeholder: "Decide how to launch our new mobile app"},
			{Name: "approaches", Label: "Number of approaches", Type: FieldNumber, Required: true, DefaultValue: "3"},
			{Name: "criteria", Label: "Evaluation criteria", Type: FieldMultiSelect, Required: true, Options: criteriaOptions},
			{Name: "context", Label: "Additional context", Type: FieldTextarea, Placeholder: "Budget, constraints, audience"},
		},
		render: renderTreeOfThought,
	},
	{
		ID:          ChainOfThought,
		Name:        "Chain-of-Thought",
		Description: "Walks through a problem one explicit reasoning step at a time before giving the answer.",
		Fields: []Field{
			{Name: "role", Label: "Role", Type: FieldText, Required: true, Placeholder: "a patient math tutor"},
			{Name: "problem", Label: "Problem", Type: FieldTextarea, Required: true, Placeholder: "Describe the problem to solve"},
			{Name: "context", Label: "Additional context", Type: FieldTextarea},
			{Name: "steps", Label: "Reasoning steps", Type: FieldMultiSelect, Placeholder: "Optional steps the model should follow"},
			{Name: "outputFormat", Label: "Output format", Type: FieldText, Placeholder: "A numbered list followed by the answer"},
		},
		render: renderChainOfThought,
	},
	{
		ID:          SelfConsistency,
		Name:        "Self-Consistency",
		Description: "Solves the same question along several independent reasoning paths and keeps the answer they agree on.",
		Fields: []Field{
			{Name: "role", Label: "Role", Type: FieldText, Required: true, Placeholder: "a careful data analyst"},
			{Name: "question", Label: "Question", Type: FieldTextarea, Required: true},
			{Name: "paths", Label: "Number of reasoning paths", Type: FieldNumber, Required: true, DefaultValue: "3"},
			{Name: "context", Label: "Additional context", Type: FieldTextarea},
			{Name: "aggregation", Label: "How to pick the final answer", Type: FieldText, DefaultValue: "majority vote"},
		},
		render: renderSelfConsistency,
	},
	{
		ID:          RolePrompting,
		Name:        "Role Prompting",
		Description: "Assigns the model a specific persona so answers carry that expert's knowledge and voice.",
		Fields: []Field{
			{Name: "role", Label: "Role or persona", Type: FieldText, Required: true, Placeholder: "an experienced employment lawyer"},
			{Name: "expertise", Label: "Area of expertise", Type: FieldText},
			{Name: "task", Label: "Task", Type: FieldTextarea, Required: true},
			{Name: "audience", Label: "Audience", Type: FieldText},
			{Name: "tone", Label: "Tone", Type: FieldText, DefaultValue: "Professional"},
			{Name: "constraints", Label: "Constraints", Type: FieldMultiSelect},
		},
		render: renderRolePrompting,
	},
	{
		ID:          Reflection,
		Name:        "Reflection",
		Description: "Drafts a response, critiques it against explicit criteria and revises it over several rounds.",
		Fields: []Field{
			{Name: "role", Label: "Role", Type: FieldText, Required: true, Placeholder: "a meticulous editor"},
			{Name: "task", Label: "Task", Type: FieldTextarea, Required: true},
			{Name: "draft", Label: "Existing draft", Type: FieldTextarea},
			{Name: "criteria", Label: "Review criteria", Type: FieldMultiSelect, Required: true, Options: criteriaOptions},
			{Name: "iterations", Label: "Revision rounds", Type: FieldNumber, DefaultValue: "2"},
		},
		render: renderReflection,
	},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, fw := range catalog {
		idx[fw.ID] = i
	}
	return idx
}()

// All returns every framework in canonical order.
func All() []Framework {
	out := make([]Framework, len(catalog))
	for i, fw := range catalog {
		out[i] = fw.clone()
	}
	return out
}

// IDs returns the framework ids in canonical order.
func IDs() []string {
	out := make([]string, len(catalog))
	for i, fw := range catalog {
		out[i] = fw.ID
	}
	return out
}

// ByID looks up a framework. The boolean is false when id is not in the catalog.
func ByID(id string) (Framework, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Framework{}, false
	}
	return catalog[i].clone(), true
}

// IsKnown reports whether id names a catalog framework.
func IsKnown(id string) bool {
	_, ok := catalogIndex[id]
	return ok
}

// RequiredFields lists the required field names of a framework in schema order.
func (f Framework) RequiredFields() []string {
	var out []string
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field.Name)
		}
	}
	return out
}

// Defaults returns the schema default values, or nil when the framework has none.
func (f Framework) Defaults() FieldValues {
	var out FieldValues
	for _, field := range f.Fields {
		if field.DefaultValue == "" {
			continue
		}
		if out == nil {
			out = FieldValues{}
		}
		out[field.Name] = Scalar(field.DefaultValue)
	}
	return out
}

// Field looks up a field by name.
func (f Framework) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (f Framework) clone() Framework {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		field.Options = append([]string(nil), field.Options...)
		out.Fields[i] = field
	}
	return out
}
