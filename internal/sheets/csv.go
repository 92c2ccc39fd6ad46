// internal/sheets/csv.go
package sheets

import (
	"strings"
)

// Parse turns raw delimited text into rows of trimmed string cells.
//
// The first line is always treated as a header and skipped, as are blank
// lines. Within a line a double quote toggles the in-quotes flag (quote
// characters never reach the output) and a comma separates fields only
// outside quotes. Malformed quoting shifts field boundaries but never
// produces an error, which keeps partially broken spreadsheet exports
// importable. Rows are not guaranteed a uniform cell count; consumers treat
// missing trailing cells as absent.
func Parse(text string) [][]string {
	lines := strings.Split(text, "\n")
	var rows [][]string
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var cells []string
		var cell strings.Builder
		inQuotes := false
		for _, ch := range line {
			switch {
			case ch == '"':
				inQuotes = !inQuotes
			case ch == ',' && !inQuotes:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			default:
				cell.WriteRune(ch)
			}
		}
		cells = append(cells, strings.TrimSpace(cell.String()))
		rows = append(rows, cells)
	}
	return rows
}
