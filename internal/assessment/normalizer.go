package assessment

import (
	"sort"
	"strings"

	"pet-care-advisor/internal/knowledge"
)

// normalize maps raw symptom phrases onto the canonical vocabulary.
// Matching is case-insensitive and tolerant of space/underscore variants;
// duplicates collapse to one entry. Phrases the vocabulary does not know are
// dropped silently but counted, so downstream callers can signal low
// confidence. An input with no usable phrases at all fails with
// ErrInvalidInput.
func normalize(kb *knowledge.Base, raw []string) (symptomInput, error) {
	nonEmpty := 0
	seen := make(map[string]bool)
	var ids []string
	unmatched := 0

	for _, phrase := range raw {
		if strings.TrimSpace(phrase) == "" {
			continue
		}
		nonEmpty++
		id, ok := kb.Canonical(phrase)
		if !ok {
			unmatched++
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if nonEmpty == 0 {
		return symptomInput{}, ErrInvalidInput
	}

	// Deterministic order regardless of how the caller listed symptoms.
	sort.Strings(ids)

	return symptomInput{IDs: ids, UnmatchedCount: unmatched}, nil
}
