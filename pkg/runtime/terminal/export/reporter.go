package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/umami-atlas/pkg/models/api"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Reporter renders daily summaries to the console or a file.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new summary reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Options select the output format and an optional destination file.
type Options struct {
	Format     string
	OutputPath string
}

func (r *Reporter) Handle(summary api.Summary, opts Options) error {
	var rendered string
	switch opts.Format {
	case "", FormatMarkdown:
		out, err := renderMarkdown(summary)
		if err != nil {
			return err
		}
		rendered = out
	case FormatJSON:
		encoded, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		rendered = string(encoded)
	default:
		return fmt.Errorf("unsupported format %q, want %s or %s", opts.Format, FormatMarkdown, FormatJSON)
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(rendered+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintln(r.writer, rendered)
	return err
}

func renderMarkdown(summary api.Summary) (string, error) {
	funcMap := template.FuncMap{
		"rate": func(rate *float64) string {
			if rate == nil {
				return "n/a"
			}
			return fmt.Sprintf("%.2f%%", *rate*100)
		},
		"note": func(note string) string {
			if note == "" {
				return "unknown issue"
			}
			return note
		},
	}

	tmpl := `Umami
基础数据
- Date: {{.Date}} ({{.Timezone}})
- Visitors: {{.BasicData.Visitors}}
- Visits: {{.BasicData.Visits}}
- Visit duration: {{.BasicData.VisitDurationClock}} ({{.BasicData.VisitDurationSeconds}}s)

漏斗数据
{{- if not .FunnelData}}
- No funnel results.
{{- else}}
{{- range .FunnelData}}
{{- if eq .Status "ok"}}
- {{.DisplayName}}: {{.StartVisitors}} -> {{.FinalVisitors}}, conversion={{rate .ConversionRate}}
{{- else}}
- {{.DisplayName}}: status={{.Status}}, note={{note .Note}}
{{- end}}
{{- end}}
{{- end}}`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var b strings.Builder
	if err := t.Execute(&b, summary); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return b.String(), nil
}
