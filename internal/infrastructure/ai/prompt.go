package ai

import (
	"strings"
	"text/template"

	"github.com/codedjinn/djinn/internal/domain"
)

const runSystemPrompt = `You are a command-line assistant. Convert the user's request into a single {{.Env.Shell}} command for {{.Env.OS}}.

Rules:
- Reply with the command alone on the first line, no prose before it.
- Do not wrap the command in markdown fences.
{{- if .Explain}}
- After the command, add a brief explanation of what it does.
{{- else}}
- Do not add any explanation.
{{- end}}

Current directory: {{.Env.WorkingDir}}
{{- if .Previous}}

Previous command: {{.Previous.Command}}
Exit code: {{.Previous.ExitCode}}
Output:
{{.Previous.Output}}
{{- end}}
{{- if .History}}

Recent exchanges (oldest first):
{{- range .History}}
$ {{.Command}}  (exit {{.ExitCode}})
{{- end}}
{{- end}}`

const askSystemPrompt = `You are a command-line assistant answering a question about the user's previous shell activity. Answer concisely in plain text. Never suggest running anything destructive.

Environment: {{.Env.OS}}, shell {{.Env.Shell}}, directory {{.Env.WorkingDir}}
{{- if .Previous}}

Most recent command: {{.Previous.Command}}
Exit code: {{.Previous.ExitCode}}
Output:
{{.Previous.Output}}
{{- end}}
{{- if .History}}

Earlier exchanges (oldest first):
{{- range .History}}
$ {{.Command}}  (exit {{.ExitCode}})
{{.Output}}
{{- end}}
{{- end}}`

var (
	runTemplate = template.Must(template.New("run").Parse(runSystemPrompt))
	askTemplate = template.Must(template.New("ask").Parse(askSystemPrompt))
)

func renderRunPrompt(req domain.GenerateRequest) ([]promptMessage, error) {
	var system strings.Builder
	if err := runTemplate.Execute(&system, req); err != nil {
		return nil, err
	}
	return []promptMessage{
		{Role: "system", Content: system.String()},
		{Role: "user", Content: req.Intent},
	}, nil
}

func renderAskPrompt(req domain.AskRequest) ([]promptMessage, error) {
	var system strings.Builder
	if err := askTemplate.Execute(&system, req); err != nil {
		return nil, err
	}
	return []promptMessage{
		{Role: "system", Content: system.String()},
		{Role: "user", Content: req.Question},
	}, nil
}
