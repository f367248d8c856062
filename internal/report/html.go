package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"ms":  func(d time.Duration) int64 { return d.Milliseconds() },
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
.passed { color: #2e7d32; }
.failed, .broken { color: #c62828; }
.skipped { color: #757575; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="{{.Status}}">Status: {{.Status}} &middot; {{.Passed}} passed, {{.Failed}} failed &middot; generated {{.Generated.Format "2006-01-02 15:04:05"}}</p>
<table>
<thead><tr><th>#</th><th>Step</th><th>Status</th><th>Duration (ms)</th><th>Error</th></tr></thead>
<tbody>
{{range $i, $s := .Steps}}<tr><td>{{$i}}</td><td style="padding-left: {{add $s.Depth 1}}em">{{$s.Name}}</td><td class="{{$s.Status}}">{{$s.Status}}</td><td>{{ms $s.Duration}}</td><td>{{$s.Error}}</td></tr>
{{end}}</tbody>
</table>
{{if .Attachments}}<h2>Attachments</h2>
<ul>
{{range .Attachments}}<li><a href="{{.Path}}">{{.Name}}</a> ({{.MimeType}})</li>
{{end}}</ul>{{end}}
</body>
</html>
`))

// HTMLReporter renders a single-page summary of the recorded steps.
type HTMLReporter struct {
	recorder

	path  string
	title string
}

// NewHTMLReporter returns a reporter rendering to path on Finish.
func NewHTMLReporter(path, title string) *HTMLReporter {
	return &HTMLReporter{
		recorder: newRecorder(),
		path:     path,
		title:    title,
	}
}

func (r *HTMLReporter) Step(name string, fn func() error) error {
	_, err := r.run(name, fn)
	return err
}

func (r *HTMLReporter) Attach(name, path, mimeType string) {
	r.attach(Attachment{Name: name, Path: path, MimeType: mimeType})
}

// Finish writes the summary. Attachment links are relative to the report.
func (r *HTMLReporter) Finish(status Status) error {
	steps, atts := r.snapshot()

	passed, failed := 0, 0
	for _, s := range steps {
		if s.Status == StatusPassed {
			passed++
		} else {
			failed++
		}
	}

	dir := filepath.Dir(r.path)
	for i, a := range atts {
		if rel, err := filepath.Rel(dir, a.Path); err == nil {
			atts[i].Path = filepath.ToSlash(rel)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("failed to create html report: %w", err)
	}
	defer f.Close()

	err = htmlTemplate.Execute(f, map[string]any{
		"Title":       r.title,
		"Status":      status,
		"Passed":      passed,
		"Failed":      failed,
		"Generated":   r.now(),
		"Steps":       steps,
		"Attachments": atts,
	})
	if err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}
