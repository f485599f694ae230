package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []QueryBlock
	}{
		{
			name: "no blocks",
			text: "# Title\n\nSome prose.\n",
			want: nil,
		},
		{
			name: "default source",
			text: "intro\n```sql\nSELECT 1\n```\noutro",
			want: []QueryBlock{{Source: "default", Query: "SELECT 1", Start: 6, End: 25}},
		},
		{
			name: "named source",
			text: "```sql[warehouse]\nSELECT name\nFROM countries\n```",
			want: []QueryBlock{{Source: "warehouse", Query: "SELECT name\nFROM countries", Start: 0, End: 48}},
		},
		{
			name: "empty selector is default",
			text: "```sql[]\nSELECT 1\n```",
			want: []QueryBlock{{Source: "default", Query: "SELECT 1", Start: 0, End: 21}},
		},
		{
			name: "close directly after header",
			text: "```sql\n```",
			want: []QueryBlock{{Source: "default", Query: "", Start: 0, End: 10}},
		},
		{
			name: "blank query line",
			text: "```sql\n\n```",
			want: []QueryBlock{{Source: "default", Query: "", Start: 0, End: 11}},
		},
		{
			name: "other languages are ignored",
			text: "```python\nprint(1)\n```\n```sqlite\nSELECT 1\n```\n```sql [x]\nSELECT 2\n```",
			want: nil,
		},
		{
			name: "first close marker wins",
			text: "```sql\nSELECT 1\n\n```sql\nSELECT 2",
			want: []QueryBlock{{Source: "default", Query: "SELECT 1\n", Start: 0, End: 20}},
		},
		{
			name: "unterminated fence ends the scan",
			text: "```sql[a]\nSELECT 1\n```\n```sql\nSELECT 2",
			want: []QueryBlock{{Source: "a", Query: "SELECT 1", Start: 0, End: 22}},
		},
		{
			name: "unterminated only",
			text: "```sql\nSELECT 1",
			want: nil,
		},
		{
			name: "multiple blocks in order",
			text: "```sql[a]\nSELECT 1\n```\ntext\n```sql\nSELECT 2\n```",
			want: []QueryBlock{
				{Source: "a", Query: "SELECT 1", Start: 0, End: 22},
				{Source: "default", Query: "SELECT 2", Start: 28, End: 47},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanBlocks(tt.text)
			assert.Equal(t, tt.want, got)

			for _, b := range got {
				assert.Equal(t, "```sql", tt.text[b.Start:b.Start+6])
				assert.Equal(t, "```", tt.text[b.End-3:b.End])
			}
		})
	}
}

func TestScanBlocks_Idempotent(t *testing.T) {
	text := "# Report\n```sql\nSELECT name, population\nFROM countries\n```\n\n```sql[duckdb_source]\nSELECT 1\n```\n"

	first := ScanBlocks(text)
	second := ScanBlocks(text)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestBlocks_EarlyStop(t *testing.T) {
	text := "```sql\nSELECT 1\n```\n```sql\nSELECT 2\n```"

	var seen []string
	for b := range Blocks(text) {
		seen = append(seen, b.Query)
		break
	}
	assert.Equal(t, []string{"SELECT 1"}, seen)
}

func TestBlocks_QueryVerbatim(t *testing.T) {
	query := "  SELECT *\n\tFROM \"odd table\" -- comment ```\n  WHERE x < 3 & y > 2"
	text := "```sql\n" + query + "\n```"

	blocks := ScanBlocks(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, query, blocks[0].Query)
}
