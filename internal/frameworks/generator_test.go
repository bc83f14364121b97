package frameworks

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGenerateTreeOfThoughtContainsInputs(t *testing.T) {
	out, err := Generate(TreeOfThought, FieldValues{
		"role":       Scalar("X"),
		"objective":  Scalar("Y"),
		"approaches": Scalar("3"),
		"criteria":   Scalar("Z"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"X", "Y", "3 different approaches", "Z"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateCriteriaListAndScalar(t *testing.T) {
	base := FieldValues{
		"role":       Scalar("an analyst"),
		"objective":  Scalar("pick a vendor"),
		"approaches": Scalar("3"),
	}

	withList := base.Clone()
	withList["criteria"] = List("Accuracy", "Speed", "Cost")
	out, err := Generate(TreeOfThought, withList)
	if err != nil {
		t.Fatalf("Generate list: %v", err)
	}
	if !strings.Contains(out, "(1) Accuracy, (2) Speed, (3) Cost") {
		t.Fatalf("expected numbered criteria, got:\n%s", out)
	}

	withScalar := base.Clone()
	withScalar["criteria"] = Scalar("Accuracy, Speed and Cost")
	out, err = Generate(TreeOfThought, withScalar)
	if err != nil {
		t.Fatalf("Generate scalar: %v", err)
	}
	if !strings.Contains(out, "criteria: Accuracy, Speed and Cost.") {
		t.Fatalf("expected verbatim criteria, got:\n%s", out)
	}
	if strings.Contains(out, "(1)") {
		t.Fatalf("scalar criteria must not be numbered")
	}

	withScalar["criteria"] = Scalar("  Z,\n  W  ")
	out, err = Generate(TreeOfThought, withScalar)
	if err != nil {
		t.Fatalf("Generate padded scalar: %v", err)
	}
	if !strings.Contains(out, "  Z,\n  W  ") {
		t.Fatalf("expected padded scalar verbatim, got:\n%s", out)
	}
}

func TestGenerateEmptyStringIsMissing(t *testing.T) {
	_, err := Generate(TreeOfThought, FieldValues{
		"role":       Scalar(""),
		"objective":  Scalar("Y"),
		"approaches": Scalar("3"),
		"criteria":   List("  ", ""),
	})
	if !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
	}
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFieldsError, got %T", err)
	}
	if !reflect.DeepEqual(missing.Fields, []string{"role", "criteria"}) {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
}

func TestGenerateUnknownFramework(t *testing.T) {
	_, err := Generate("socratic", FieldValues{"role": Scalar("x")})
	if !errors.Is(err, ErrInvalidFrameworkType) {
		t.Fatalf("expected ErrInvalidFrameworkType, got %v", err)
	}
	if errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("unknown framework must not report missing fields")
	}
}

func TestGenerateOptionalFieldsOmitted(t *testing.T) {
	out, err := Generate(RolePrompting, FieldValues{
		"role":      Scalar("a tax advisor"),
		"task":      Scalar("explain VAT"),
		"tone":      Scalar("   "),
		"expertise": List(" ", ""),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, absent := range []string{"Audience:", "Tone:", "Constraints:", "expertise in"} {
		if strings.Contains(out, absent) {
			t.Fatalf("expected %q to be omitted, got:\n%s", absent, out)
		}
	}

	out, err = Generate(RolePrompting, FieldValues{
		"role":        Scalar("a tax advisor"),
		"expertise":   Scalar("EU tax law"),
		"task":        Scalar("explain VAT"),
		"audience":    Scalar("founders"),
		"constraints": List("No jargon", "Under 300 words"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"a tax advisor with expertise in EU tax law", "Audience: founders", "Constraints: (1) No jargon, (2) Under 300 words"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q, got:\n%s", want, out)
		}
	}
}

func TestGenerateEveryFrameworkDeterministic(t *testing.T) {
	inputs := map[string]FieldValues{
		TreeOfThought:   {"role": Scalar("r"), "objective": Scalar("o"), "approaches": Scalar("4"), "criteria": List("a", "b")},
		ChainOfThought:  {"role": Scalar("r"), "problem": Scalar("p"), "steps": List("s1", "s2"), "outputFormat": Scalar("json")},
		SelfConsistency: {"role": Scalar("r"), "question": Scalar("q"), "paths": Scalar("5")},
		RolePrompting:   {"role": Scalar("r"), "task": Scalar("t")},
		Reflection:      {"role": Scalar("r"), "task": Scalar("t"), "criteria": List("clarity"), "draft": Scalar("d")},
	}
	for _, id := range IDs() {
		values, ok := inputs[id]
		if !ok {
			t.Fatalf("no fixture for %s", id)
		}
		first, err := Generate(id, values)
		if err != nil {
			t.Fatalf("Generate %s: %v", id, err)
		}
		for i := 0; i < 5; i++ {
			again, err := Generate(id, values.Clone())
			if err != nil {
				t.Fatalf("Generate %s: %v", id, err)
			}
			if again != first {
				t.Fatalf("%s output not deterministic", id)
			}
		}
	}
}

func TestReflectionWithoutDraft(t *testing.T) {
	out, err := Generate(Reflection, FieldValues{
		"role":     Scalar("an editor"),
		"task":     Scalar("write a cover letter"),
		"criteria": List("Clarity", "Tone"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(out, "Initial draft:") {
		t.Fatalf("expected no draft section")
	}
	if !strings.Contains(out, "cycle 2 times") {
		t.Fatalf("expected default of 2 rounds, got:\n%s", out)
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	var fields FieldValues
	raw := `{"role":"X","approaches":3,"criteria":["Accuracy","Speed"],"context":null}`
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["role"].IsList() || fields["role"].Text() != "X" {
		t.Fatalf("unexpected role: %#v", fields["role"])
	}
	if fields["approaches"].Text() != "3" {
		t.Fatalf("expected number kept as text, got %q", fields["approaches"].Text())
	}
	if !fields["criteria"].IsList() || len(fields["criteria"].Items()) != 2 {
		t.Fatalf("unexpected criteria: %#v", fields["criteria"])
	}
	if !fields["context"].Empty() {
		t.Fatalf("expected null to be empty")
	}

	if err := json.Unmarshal([]byte(`{"role":{"a":1}}`), &fields); err == nil {
		t.Fatalf("expected object value to be rejected")
	}

	out, err := json.Marshal(FieldValues{"criteria": List("a"), "role": Scalar("r")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"criteria":["a"],"role":"r"}` {
		t.Fatalf("unexpected json: %s", out)
	}
}

func TestCatalogLookup(t *testing.T) {
	if _, ok := ByID("nope"); ok {
		t.Fatalf("expected unknown id to be not found")
	}
	fw, ok := ByID(TreeOfThought)
	if !ok {
		t.Fatalf("expected tot to be found")
	}
	if !reflect.DeepEqual(fw.RequiredFields(), []string{"role", "objective", "approaches", "criteria"}) {
		t.Fatalf("unexpected required fields: %v", fw.RequiredFields())
	}
	fw.Fields[0].Name = "mutated"
	again, _ := ByID(TreeOfThought)
	if again.Fields[0].Name != "role" {
		t.Fatalf("catalog must not be mutable through lookups")
	}
	if got := IDs(); !reflect.DeepEqual(got, []string{"tot", "cot", "self-consistency", "role", "reflection"}) {
		t.Fatalf("unexpected canonical order: %v", got)
	}
}
