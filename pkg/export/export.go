package export

import (
	"encoding/json"
	"strings"
)

// CSV renders a header row followed by one line per data row. Fields
// containing a comma or a double quote are wrapped in double quotes with
// inner quotes doubled.
func CSV(headers []string, rows [][]string) string {
	var b strings.Builder

	writeLine := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(field))
		}
	}

	writeLine(headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(row)
	}
	return b.String()
}

func escapeField(value string) string {
	if strings.ContainsAny(value, ",\"") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// JSONPretty marshals v as a two-space-indented JSON document
func JSONPretty(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PipeDelimited renders one " | "-joined line per row, for clipboard copies
func PipeDelimited(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " | ")
	}
	return strings.Join(lines, "\n")
}
