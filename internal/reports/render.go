package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// printShell wraps the rendered fragment in a printable document.
const printShell = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1a1a1a; max-width: 800px; margin: 2rem auto; line-height: 1.5; }
h1, h2, h3 { color: #0f2a43; page-break-after: avoid; }
h1 { border-bottom: 2px solid #0f2a43; padding-bottom: 0.3rem; }
table { border-collapse: collapse; width: 100%%; margin: 1rem 0; }
th, td { border: 1px solid #999; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #eef2f6; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
hr { border: none; border-top: 1px solid #ccc; margin: 1.5rem 0; }
@media print {
  body { margin: 0; max-width: none; }
  table, pre { page-break-inside: avoid; }
}
</style>
</head>
<body>
%s</body>
</html>
`

// RenderReportHTML converts a stored report (Markdown) into a
// self-contained printable HTML document.
func RenderReportHTML(title, markdownText string) (string, error) {
	source := stripCodeFence(markdownText)

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	return fmt.Sprintf(printShell, htmlEscape(title), buf.String()), nil
}

// stripCodeFence unwraps documents that the generator returned inside
// a single top-level code fence.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return s
	}

	return strings.Join(lines[1:len(lines)-1], "\n")
}

func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
