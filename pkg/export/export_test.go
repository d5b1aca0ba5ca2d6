package export

import (
	"strings"
	"testing"
)

// parseCSVLine splits one rendered line back into fields, honoring quoted
// fields with doubled inner quotes
func parseCSVLine(t *testing.T, line string) []string {
	t.Helper()

	var fields []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case !inQuotes && ch == '"':
			inQuotes = true
		case !inQuotes && ch == ',':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	if inQuotes {
		t.Fatalf("Unterminated quote in line %q", line)
	}
	return append(fields, b.String())
}

func TestCSVPlainFieldsStayUnquoted(t *testing.T) {
	got := CSV([]string{"Name", "Depot"}, [][]string{{"Asha", "North"}})
	want := "Name,Depot\nAsha,North"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("Output should not carry a trailing newline")
	}
}

func TestCSVEscapesCommasAndQuotes(t *testing.T) {
	got := CSV([]string{"Details"}, [][]string{
		{"Grade A, washed"},
		{`the "good" lot`},
	})

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[1] != `"Grade A, washed"` {
		t.Errorf("Comma field should be quoted, got %q", lines[1])
	}
	if lines[2] != `"the ""good"" lot"` {
		t.Errorf("Inner quotes should be doubled, got %q", lines[2])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	headers := []string{"Name", "Details", "Weight"}
	rows := [][]string{
		{"Asha Patel", "Grade A, washed", "10"},
		{`Ravi "RK" Kumar`, "", "2.5"},
	}

	lines := strings.Split(CSV(headers, rows), "\n")
	if len(lines) != len(rows)+1 {
		t.Fatalf("Expected %d lines, got %d", len(rows)+1, len(lines))
	}

	for i, want := range rows {
		got := parseCSVLine(t, lines[i+1])
		if len(got) != len(want) {
			t.Fatalf("Row %d: expected %d fields, got %d", i, len(want), len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("Row %d field %d: expected %q, got %q", i, j, want[j], got[j])
			}
		}
	}
}

func TestJSONPrettyUsesTwoSpaceIndent(t *testing.T) {
	got, err := JSONPretty(map[string]string{"name": "Asha"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(got, "\n  \"name\": \"Asha\"") {
		t.Errorf("Expected two-space indented output, got %q", got)
	}
}

func TestPipeDelimitedJoinsRows(t *testing.T) {
	got := PipeDelimited([][]string{
		{"Asha", "9000000001", "Grade A", "10kg", "Loose", "North"},
		{"Ravi", "9000000002", "Grade B", "20kg", "Bagged", "South"},
	})

	want := "Asha | 9000000001 | Grade A | 10kg | Loose | North\nRavi | 9000000002 | Grade B | 20kg | Bagged | South"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if PipeDelimited(nil) != "" {
		t.Error("Empty input should yield an empty string")
	}
}
