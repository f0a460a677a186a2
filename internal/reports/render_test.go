package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReportHTML_BasicMarkdown(t *testing.T) {
	md := "# Lastenheft\n\nEin **wichtiger** Prozess.\n"

	out, err := RenderReportHTML("Lastenheft", md)
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Lastenheft</title>")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>wichtiger</strong>")
}

func TestRenderReportHTML_Tables(t *testing.T) {
	md := "| Position | Betrag |\n| --- | --- |\n| Personal | 500 |\n"

	out, err := RenderReportHTML("Kosten", md)
	require.NoError(t, err)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Position</th>")
	assert.Contains(t, out, "<td>Personal</td>")
}

func TestRenderReportHTML_StripsWrappingCodeFence(t *testing.T) {
	md := "```markdown\n# Dokument\n\nInhalt\n```"

	out, err := RenderReportHTML("Dokument", md)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.NotContains(t, out, "<pre>")
}

func TestRenderReportHTML_EscapesTitle(t *testing.T) {
	out, err := RenderReportHTML(`Prozess <A&B>`, "Inhalt")
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Prozess &lt;A&amp;B&gt;</title>")
}

func TestRenderReportHTML_MalformedInputStillRenders(t *testing.T) {
	out, err := RenderReportHTML("Kaputt", "| nur | eine | zeile\n**unclosed")
	require.NoError(t, err)

	assert.Contains(t, out, "<body>")
}
