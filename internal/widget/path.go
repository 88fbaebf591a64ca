package widget

import "strings"

// PathDelimiter separates the segments of a hierarchical item path.
const PathDelimiter = "::"

// SplitPath splits raw on every PathDelimiter. Segments are not trimmed and
// empty segments are kept, so "" yields [""] and "a::::b" yields
// ["a", "", "b"].
func SplitPath(raw string) []string {
	return strings.Split(raw, PathDelimiter)
}

// JoinPath is the inverse of SplitPath.
func JoinPath(segments []string) string {
	return strings.Join(segments, PathDelimiter)
}
