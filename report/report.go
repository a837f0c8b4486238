package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-structura/catalog"
	"go-structura/types"
)

// Meta carries the optional extras for one export. Everything here may be
// left empty.
type Meta struct {
	Filename   string // overrides the derived filename
	ImagePath  string // local path of the source image to embed
	ExternalID string // identifier assigned by the persistence layer
	Summary    string // natural-language condition summary
}

// Document is a completed export. Warnings flag degraded exports, e.g. an
// unreadable source image; a degraded export is still a usable report.
type Document struct {
	Filename string
	HTML     []byte
	Warnings []string
}

type countRow struct {
	Kind  types.DamageKind
	Count int
}

type reportData struct {
	ID          string
	ExternalID  string
	CreatedAt   string
	Severity    types.Severity
	HealthScore int
	Rows        []countRow
	Precautions []string
	Summary     string
	ImageSrc    template.URL
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Surface Inspection Report</title>
<style>
body { font-family: Arial; margin: 40px; }
h1 { color: #333; }
.score { font-size: 24px; font-weight: bold; }
.bar { width: 300px; height: 18px; background-color: #eee; border: 1px solid #ccc; }
.fill { height: 100%; }
.sev-Good { background-color: #2e8b57; }
.sev-Moderate { background-color: #e8a33d; }
.sev-Critical { background-color: #c0392b; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; }
th { background-color: #f2f2f2; }
img.source { max-width: 480px; margin-top: 20px; }
</style>
</head>
<body>

<h1>Surface Inspection Report</h1>

<p>Inspection: {{.ID}}{{if .ExternalID}} ({{.ExternalID}}){{end}}<br>
Date: {{.CreatedAt}}</p>

<h2 class="sev-label">Severity: {{.Severity}}</h2>

<div class="score">Health Score: {{.HealthScore}} / 100</div>
<div class="bar"><div class="fill sev-{{.Severity}}" style="width: {{.HealthScore}}%"></div></div>

{{if .Summary}}<p>{{.Summary}}</p>{{end}}

<h3>Detected Damage</h3>
{{if .Rows}}
<table>
<tr><th>Damage Kind</th><th>Count</th></tr>
{{range .Rows}}
<tr><td>{{.Kind}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{else}}
<p>No damage detected.</p>
{{end}}

<h3>Precautions</h3>
<ul>
{{range .Precautions}}<li>{{.}}</li>
{{end}}</ul>

{{if .ImageSrc}}<img class="source" src="{{.ImageSrc}}" alt="source image">{{end}}

</body>
</html>
`

// Export renders one assessment as a self-contained HTML document. A missing
// or unreadable source image degrades the export to text-only with a warning;
// only a template failure is a hard error.
func Export(cat *catalog.Catalog, a types.Assessment, meta Meta) (Document, error) {
	doc := Document{Filename: filename(a, meta)}

	data := reportData{
		ID:          a.ID,
		ExternalID:  meta.ExternalID,
		CreatedAt:   a.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Severity:    a.Severity,
		HealthScore: a.HealthScore,
		Rows:        countRows(cat, a.Counts),
		Precautions: a.Precautions,
		Summary:     meta.Summary,
	}

	if meta.ImagePath != "" {
		src, err := embedImage(meta.ImagePath)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("source image not embedded: %v", err))
		} else {
			data.ImageSrc = src
		}
	}

	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("failed to render report: %w", err)
	}

	doc.HTML = buf.Bytes()
	return doc, nil
}

// countRows lists detected kinds with their counts in catalog declaration
// order, then any unknown kinds sorted by name so the output stays
// deterministic.
func countRows(cat *catalog.Catalog, counts types.DetectionCounts) []countRow {
	var rows []countRow
	listed := make(map[types.DamageKind]bool)

	for _, kind := range cat.Kinds() {
		if counts[kind] > 0 {
			rows = append(rows, countRow{Kind: kind, Count: counts[kind]})
			listed[kind] = true
		}
	}

	var unknown []types.DamageKind
	for kind, count := range counts {
		if count > 0 && !listed[kind] {
			unknown = append(unknown, kind)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, kind := range unknown {
		rows = append(rows, countRow{Kind: kind, Count: counts[kind]})
	}

	return rows
}

func filename(a types.Assessment, meta Meta) string {
	if meta.Filename != "" {
		return meta.Filename
	}
	return fmt.Sprintf("inspection_%s_%s.html", a.ID, a.CreatedAt.UTC().Format("20060102"))
}

func embedImage(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mimeType := "image/jpeg"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mimeType = "image/png"
	case ".gif":
		mimeType = "image/gif"
	case ".webp":
		mimeType = "image/webp"
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return template.URL("data:" + mimeType + ";base64," + encoded), nil
}
