package formatter

import (
	"strings"
	"testing"
)

func TestTable_String(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "Basic table formatting",
			header: []string{"Slug", "Name"},
			rows:   [][]string{{"gracies", "Gracie's"}, {"rm", "Ritz"}},
			expected: `
| Slug    | Name     |
| ------- | -------- |
| gracies | Gracie's |
| rm      | Ritz     |
`,
		},
		{
			name:   "Minimum separator width",
			header: []string{"A", "B"},
			rows:   [][]string{{"x", "y"}},
			expected: `
| A   | B   |
| --- | --- |
| x   | y   |
`,
		},
		{
			name:   "Trim spaces and fill missing cells",
			header: []string{"Col A", "Col B"},
			rows:   [][]string{{"  val A  "}, {"a", "b", "dropped"}},
			expected: `
| Col A | Col B |
| ----- | ----- |
| val A |       |
| a     | b     |
`,
		},
		{
			name:   "Mixed CJK and ASCII",
			header: []string{"Slug", "Name"},
			rows:   [][]string{{"ramen", "ラーメン屋"}, {"cafe", "Short text"}},
			// ラーメン屋 is 5 wide characters, 10 cells.
			expected: `
| Slug  | Name       |
| ----- | ---------- |
| ramen | ラーメン屋 |
| cafe  | Short text |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.header...)
			for _, row := range tt.rows {
				table.AddRow(row...)
			}

			if table.Len() != len(tt.rows) {
				t.Errorf("Len() = %d, want %d", table.Len(), len(tt.rows))
			}

			if got := table.String(); got != strings.TrimSpace(tt.expected) {
				t.Errorf("String() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}
