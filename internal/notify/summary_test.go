package notify

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaryFields = []Field{
	{Label: "Workshop", Value: "Intro to Go"},
	{Label: "Name", Value: "Ana Lee"},
	{Label: "Message", Value: `asked about <script> & "quotes", twice`},
	{Label: "Notes", Value: ""},
}

func TestText_OneLinePerField(t *testing.T) {
	text := Text(summaryFields)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, len(summaryFields))
	assert.Equal(t, "Workshop: Intro to Go", lines[0])
	assert.Equal(t, "Notes: ", lines[3])
}

func TestHTML_EscapesUserContent(t *testing.T) {
	html := HTML(summaryFields)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<th align=\"left\">Message</th>")
}

func TestCSV_HeaderAndSingleRow(t *testing.T) {
	raw, err := CSV(summaryFields)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Workshop", "Name", "Message", "Notes"}, records[0])
	assert.Equal(t, `asked about <script> & "quotes", twice`, records[1][2])
}

// All three renderings must expose the same (label, value) pairs in the same
// order, whatever the payload.
func TestRenderings_NeverDrift(t *testing.T) {
	text := Text(summaryFields)
	html := HTML(summaryFields)
	raw, err := CSV(summaryFields)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)

	textLines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	htmlRows := strings.Count(html, "<tr>")

	require.Len(t, textLines, len(summaryFields))
	require.Len(t, records[0], len(summaryFields))
	require.Equal(t, len(summaryFields), htmlRows)

	for i, f := range summaryFields {
		assert.Equal(t, fmt.Sprintf("%s: %s", f.Label, f.Value), textLines[i])
		assert.Equal(t, f.Label, records[0][i])
		assert.Equal(t, f.Value, records[1][i])
	}
}
