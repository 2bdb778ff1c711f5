package notify

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"strings"
)

// Field is one (label, value) pair of a submission summary. All three
// renderings below consume the same ordered slice, so the plain-text body,
// the HTML table, and the CSV attachment can never drift from each other.
type Field struct {
	Label string
	Value string
}

// Text renders the summary as a plain-text block, one "Label: value" line
// per field.
func Text(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	return b.String()
}

// HTML renders the summary as a two-column table. Labels and values are
// escaped; submitted free text must never become markup.
func HTML(fields []Field) string {
	var b strings.Builder
	b.WriteString(`<table cellpadding="6" border="1" style="border-collapse:collapse">`)
	b.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>\n",
			html.EscapeString(f.Label), html.EscapeString(f.Value))
	}
	b.WriteString("</table>\n")
	return b.String()
}

// CSV renders the summary as a two-row CSV document: a header row of labels
// and a single data row of values.
func CSV(fields []Field) ([]byte, error) {
	labels := make([]string, len(fields))
	values := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
		values[i] = f.Value
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(labels); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.Write(values); err != nil {
		return nil, fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
