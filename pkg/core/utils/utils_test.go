package utils

import (
	"encoding/json"
	"testing"
)

type coachShape struct {
	Answer string `json:"answer"`
	Score  float64
}

func TestSmartParseStrictJSON(t *testing.T) {
	var out coachShape
	raw, err := SmartParse(`{"answer": "ok", "Score": 72.5}`, &out)
	if err != nil {
		t.Fatalf("strict json failed: %v", err)
	}
	if out.Answer != "ok" || out.Score != 72.5 {
		t.Errorf("fields not populated: %+v", out)
	}
	// Already-valid input passes through untouched.
	if raw != `{"answer": "ok", "Score": 72.5}` {
		t.Errorf("strict input must not be rewritten: %s", raw)
	}
}

func TestSmartParseRepairsModelOutput(t *testing.T) {
	// Fenced, single-quoted, trailing-comma output is what models
	// actually return.
	cases := []string{
		"```json\n{\"answer\": \"ok\"}\n```",
		`{'answer': 'ok'}`,
		`{"answer": "ok",}`,
	}
	for _, input := range cases {
		var out coachShape
		if _, err := SmartParse(input, &out); err != nil {
			t.Errorf("SmartParse(%q) failed: %v", input, err)
			continue
		}
		if out.Answer != "ok" {
			t.Errorf("SmartParse(%q): answer = %q", input, out.Answer)
		}
	}
}

func TestRepairJSON(t *testing.T) {
	repaired, err := RepairJSON(`{answer: "ok", levers: [1, 2,]}`)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(repaired), &m); err != nil {
		t.Fatalf("repaired output is not valid json: %v\n%s", err, repaired)
	}
	if m["answer"] != "ok" {
		t.Errorf("answer lost in repair: %v", m)
	}
}

func TestParseHJSONToStruct(t *testing.T) {
	// The demo fixtures rely on comments and unquoted keys.
	input := `{
		# seeded company
		answer: ok
		Score: 72.5
	}`
	var out coachShape
	if err := ParseHJSONToStruct(input, &out); err != nil {
		t.Fatalf("hjson parse failed: %v", err)
	}
	if out.Answer != "ok" || out.Score != 72.5 {
		t.Errorf("fields not populated: %+v", out)
	}
}

func TestCleanMarkdown(t *testing.T) {
	got := CleanMarkdown("```markdown\n# Summary\nAll good.\n```")
	if got != "# Summary\nAll good." {
		t.Errorf("fences not stripped: %q", got)
	}
	if got := CleanMarkdown("  plain text  "); got != "plain text" {
		t.Errorf("whitespace not trimmed: %q", got)
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Heading\n\nSome *emphasis*.") {
		t.Error("well-formed markdown must validate")
	}
	if !ValidateMarkdown("") {
		t.Error("goldmark accepts empty input; validation is structural only")
	}
}
