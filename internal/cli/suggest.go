package cli

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/atomicstack/widget-remote/internal/dispatcher"
)

// maxSuggestDistance bounds how far a typo may be from a known action or label.
const maxSuggestDistance = 3

// msgWidgetNotFound is the server diagnostic for a selector matching nothing.
const msgWidgetNotFound = "Widget not found"

// suggestAction returns the known action closest to name, if any is close.
func suggestAction(name string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, a := range dispatcher.Actions() {
		if string(a) == name {
			return "", false
		}
		if d := levenshtein.ComputeDistance(name, string(a)); d < bestDist {
			best, bestDist = string(a), d
		}
	}
	return best, best != ""
}

func knownAction(name string) bool {
	for _, a := range dispatcher.Actions() {
		if string(a) == name {
			return true
		}
	}
	return false
}

// suggestLabel returns the label closest to name, ignoring case. Exact
// matches and empty labels are never suggested.
func suggestLabel(name string, labels []string) (string, bool) {
	want := strings.ToLower(name)
	best, bestDist := "", maxSuggestDistance+1
	for _, label := range labels {
		if label == "" || label == name {
			continue
		}
		if d := levenshtein.ComputeDistance(want, strings.ToLower(label)); d < bestDist {
			best, bestDist = label, d
		}
	}
	return best, best != ""
}
