package parser

import (
	"iter"
	"strings"

	"github.com/leapstack-labs/docsql/pkg/core"
)

const (
	fenceOpen  = "```sql"
	fenceClose = "```"
)

// QueryBlock is one fenced SQL block found in a page.
type QueryBlock struct {
	// Source is the selected data source name, "default" when the fence has no selector.
	Source string
	// Query is the verbatim text between the header line and the closing fence.
	Query string
	// Start and End are byte offsets of the whole fenced block, End exclusive.
	Start int
	End   int
}

// Blocks returns an iterator over the query blocks of text in document order.
//
// A block opens with ```sql followed by an optional [name] selector and a
// newline, and closes at the first newline followed by ```. A fence whose
// header is anything else is left alone. An unterminated fence ends the scan.
func Blocks(text string) iter.Seq[QueryBlock] {
	return func(yield func(QueryBlock) bool) {
		pos := 0
		for {
			i := strings.Index(text[pos:], fenceOpen)
			if i < 0 {
				return
			}
			start := pos + i
			headerStart := start + len(fenceOpen)

			nl := strings.IndexByte(text[headerStart:], '\n')
			if nl < 0 {
				return
			}
			source, ok := parseHeader(text[headerStart : headerStart+nl])
			if !ok {
				pos = headerStart
				continue
			}

			contentStart := headerStart + nl + 1
			query, end, ok := scanContent(text, contentStart)
			if !ok {
				return
			}

			if !yield(QueryBlock{Source: source, Query: query, Start: start, End: end}) {
				return
			}
			pos = end
		}
	}
}

// ScanBlocks collects Blocks(text) into a slice.
func ScanBlocks(text string) []QueryBlock {
	var blocks []QueryBlock
	for b := range Blocks(text) {
		blocks = append(blocks, b)
	}
	return blocks
}

// parseHeader interprets the rest of the fence-open line.
func parseHeader(header string) (string, bool) {
	if header == "" {
		return core.DefaultSourceName, true
	}
	if len(header) < 2 || header[0] != '[' || header[len(header)-1] != ']' {
		return "", false
	}
	name := header[1 : len(header)-1]
	if name == "" {
		return core.DefaultSourceName, true
	}
	return name, true
}

// scanContent finds the closing fence for content starting at from.
// It returns the query text and the offset just past the closing fence.
func scanContent(text string, from int) (string, int, bool) {
	if strings.HasPrefix(text[from:], fenceClose) {
		return "", from + len(fenceClose), true
	}
	j := strings.Index(text[from:], "\n"+fenceClose)
	if j < 0 {
		return "", 0, false
	}
	return text[from : from+j], from + j + 1 + len(fenceClose), true
}
