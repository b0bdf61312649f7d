package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"essay-grader-service/internal/core/domain"
)

const GradingSystemPrompt = "You are an experienced essay grader. You reply with a single flat JSON object and nothing else."

var gradingTmpl = template.Must(template.New("grading").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`Grade the essay below against each rubric criterion on a scale from 1 (poor) to 5 (excellent).

Criteria:
{{range $i, $c := .Criteria}}{{inc $i}}. {{$c.Title}}
{{with $c.Description}}   {{.}}
{{end}}{{end}}
Return only a JSON object whose keys are the criterion titles exactly as written above and whose values are integers from 1 to 5, for example:
{{.Example}}

Essay:
"""
{{.Essay}}
"""
`))

// BuildGradingPrompt renders the user prompt that asks for one 1-5 score per
// criterion, keyed by the criterion titles verbatim.
func BuildGradingPrompt(essay string, rubric *domain.Rubric) (string, error) {
	var buf bytes.Buffer
	err := gradingTmpl.Execute(&buf, struct {
		Criteria []domain.Criterion
		Example  string
		Essay    string
	}{rubric.Criteria, exampleReply(rubric), essay})
	if err != nil {
		return "", fmt.Errorf("render grading prompt: %w", err)
	}
	return buf.String(), nil
}

// exampleReply keeps rubric order, which a marshalled map would not.
func exampleReply(rubric *domain.Rubric) string {
	parts := make([]string, 0, len(rubric.Criteria))
	for _, c := range rubric.Criteria {
		key, _ := json.Marshal(c.Title)
		parts = append(parts, string(key)+": 3")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
