package shapeparser

import "strings"

// escapePattern doubles every backslash in s, ported from
// _escape_backslash: sh:pattern's regex is transcribed as-is into the
// target query language's string literal syntax, where a single
// backslash would otherwise be read as the start of an escape sequence
// rather than a regex metacharacter.
func escapePattern(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}
