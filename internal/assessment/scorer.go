package assessment

import (
	"sort"

	"pet-care-advisor/internal/knowledge"
	"pet-care-advisor/internal/pet"
)

// score converts match results into ranked confidence scores:
//
//	confidence = base_confidence x match_ratio x modifier(pet attributes)
//
// Modifiers are only those the knowledge base enumerates per condition; the
// default is 1.0. Conditions carrying an exclusion that matches the pet (an
// adult-onset disease for a puppy) are dropped before scoring. The result is
// clamped to [0,1], filtered by the condition's own threshold, and sorted by
// descending confidence with ties broken by descending severity, then
// ascending condition id. Identical inputs always produce identical scores
// and ordering.
func score(matches []matchResult, p pet.Profile) []ConditionAssessment {
	ageCategory := p.AgeCategory()
	breed := p.NormalizedBreed()

	var out []ConditionAssessment
	for _, m := range matches {
		if excludedFor(m.Condition, ageCategory, breed) {
			continue
		}
		confidence := m.Condition.BaseConfidence * m.Ratio * modifierFor(m.Condition, ageCategory, breed)
		confidence = clamp01(confidence)
		if confidence < m.Condition.ConfidenceThreshold {
			continue
		}

		out = append(out, ConditionAssessment{
			ConditionID:     m.Condition.ID,
			Name:            m.Condition.Name,
			Severity:        m.Condition.Severity,
			Confidence:      confidence,
			MatchRatio:      m.Ratio,
			MatchedSymptoms: m.Matched,
			MissingSymptoms: m.Missing,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() > out[j].Severity.Rank()
		}
		return out[i].ConditionID < out[j].ConditionID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// modifierFor multiplies the factors of every enumerated modifier the pet's
// attributes satisfy.
func modifierFor(c knowledge.Condition, ageCategory, breed string) float64 {
	factor := 1.0
	for _, m := range c.Modifiers {
		switch m.Kind {
		case knowledge.ModifierAge:
			if m.Match == ageCategory {
				factor *= m.Factor
			}
		case knowledge.ModifierBreed:
			if breed != "" && m.Match == breed {
				factor *= m.Factor
			}
		}
	}
	return factor
}

// excludedFor reports whether an enumerated exclusion rules the condition out
// for this pet.
func excludedFor(c knowledge.Condition, ageCategory, breed string) bool {
	for _, e := range c.Exclusions {
		switch e.Kind {
		case knowledge.ModifierAge:
			if e.Match == ageCategory {
				return true
			}
		case knowledge.ModifierBreed:
			if breed != "" && e.Match == breed {
				return true
			}
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
