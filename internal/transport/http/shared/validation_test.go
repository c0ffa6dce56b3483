package shared

import (
	"regexp"
	"testing"
)

func TestSchemaValidate(t *testing.T) {
	schema := Schema{
		{Field: "name", Required: true, MaxLen: 10},
		{Field: "volume", Required: true, Positive: true},
		{Field: "shift", Enum: []string{"day", "night"}},
		{Field: "inspected_at", Date: true},
		{Field: "code", Pattern: regexp.MustCompile(`^[A-Z]{2}-\d+$`)},
	}

	values := map[string]string{
		"name":         "",
		"volume":       "-3",
		"shift":        "afternoon",
		"inspected_at": "not-a-date",
		"code":         "EX-12",
	}
	v := schema.Validate(func(field string) string { return values[field] })
	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(issues), issues)
	}

	byField := map[string]string{}
	for _, issue := range issues {
		byField[issue.Field] = issue.Reason
	}
	for _, field := range []string{"name", "volume", "shift", "inspected_at"} {
		if byField[field] == "" {
			t.Errorf("expected issue for field %q", field)
		}
	}
	if _, ok := byField["code"]; ok {
		t.Error("code matches its pattern and should not fail")
	}
}

func TestSchemaOptionalFieldsSkippedWhenEmpty(t *testing.T) {
	schema := Schema{
		{Field: "remark", MaxLen: 5},
		{Field: "rate", Positive: true},
	}
	v := schema.Validate(func(string) string { return "" })
	if v.HasIssues() {
		t.Fatalf("empty optional fields should pass, got %v", v.Issues())
	}
}

func TestSchemaNumericRejectsNonNumber(t *testing.T) {
	schema := Schema{{Field: "qty", Numeric: true}}
	v := schema.Validate(func(string) string { return "abc" })
	if !v.HasIssues() {
		t.Fatal("expected numeric issue")
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("start_date", "2024-05-10")
	end, _ := v.Date("end_date", "2024-05-01")
	v.DateOrder("start_date", start, "end_date", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected two ordering issues, got %v", v.Issues())
	}
}

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Add("b", "second")
	v.Add("a", "first")
	issues := v.Issues()
	if issues[0].Field != "a" || issues[1].Field != "b" {
		t.Fatalf("issues not sorted by field: %v", issues)
	}
}
