package input

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FuzzyCompleter is a ready-made Completer (SPEC_FULL.md's supplemented
// feature) backed by github.com/sahilm/fuzzy, ranking a fixed candidate
// list against the current input text and proposing the best match's
// suffix — grounded on bubbles/list/list.go's direct use of the same
// library for filtering.
type FuzzyCompleter struct {
	Candidates []string
}

// NewFuzzyCompleter creates a completer over the given candidate words.
func NewFuzzyCompleter(candidates ...string) *FuzzyCompleter {
	return &FuzzyCompleter{Candidates: candidates}
}

// Complete implements Completer: returns the suffix of the best-ranked
// candidate that extends text, if any candidate starts with text under
// fuzzy matching and is strictly longer than it.
func (f *FuzzyCompleter) Complete(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	matches := fuzzy.Find(text, f.Candidates)
	if len(matches) == 0 {
		return "", false
	}
	best := -1
	bestScore := 0
	for _, m := range matches {
		candidate := f.Candidates[m.Index]
		if len(candidate) <= len(text) || !strings.HasPrefix(candidate, text) {
			continue
		}
		if best < 0 || m.Score > bestScore {
			best, bestScore = m.Index, m.Score
		}
	}
	if best < 0 {
		return "", false
	}
	return f.Candidates[best][len(text):], true
}
