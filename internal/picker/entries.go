package picker

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Entry is one pickable line.
type Entry struct {
	ID    string
	Label string
	// Detail is shown dimmed after the label.
	Detail string
}

func (e Entry) text() string {
	if e.Label == "" {
		return e.ID
	}
	return e.Label
}

// FilterEntries returns entries matching query. Fuzzy matches on the label
// win; when there are none a plain substring match on label or id is used.
func FilterEntries(entries []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneEntries(entries)
	}
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.text()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Entry, 0, len(matches))
		for idx, entry := range entries {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, entry)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Label), lower) || strings.Contains(strings.ToLower(entry.ID), lower) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// BestMatchIndex returns the index the cursor should land on for query:
// an exact label or id match, then a prefix match, then the first entry.
func BestMatchIndex(entries []Entry, query string) int {
	if len(entries) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	for i, entry := range entries {
		if strings.EqualFold(entry.Label, trimmed) || strings.EqualFold(entry.ID, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, entry := range entries {
		if strings.HasPrefix(strings.ToLower(entry.text()), lower) {
			return i
		}
	}
	return 0
}

func cloneEntries(entries []Entry) []Entry {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
