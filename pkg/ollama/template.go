package ollama

import (
	"strings"
	"text/template"
)

// RenderTemplate renders a prompt template with the provided data. Missing
// keys are an error rather than "<no value>" so a broken prompt is caught
// before it reaches the model.
func RenderTemplate(tmpl string, data any) (string, error) {
	tpl, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}
