package assessment

import (
	"fmt"
	"sort"

	"pet-care-advisor/internal/knowledge"
	"pet-care-advisor/internal/pet"
)

// compose assembles ordered care guidance from the top-K ranked conditions.
// Actions are unioned and deduplicated, ordered by the severity of the
// condition that produced them (most severe first); within equal severity the
// ranking order is kept. The emergency directive, when the flag is set, goes
// ahead of everything else.
func compose(kb *knowledge.Base, ranked []ConditionAssessment, emergency bool) []string {
	topK := kb.Meta().TopK
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	bySeverity := make([]ConditionAssessment, len(ranked))
	copy(bySeverity, ranked)
	sort.SliceStable(bySeverity, func(i, j int) bool {
		return bySeverity[i].Severity.Rank() > bySeverity[j].Severity.Rank()
	})

	var recommendations []string
	if emergency {
		recommendations = append(recommendations, EmergencyDirective)
	}

	seen := make(map[string]bool)
	for _, ca := range bySeverity {
		cond, ok := findCondition(kb, ca.ConditionID)
		if !ok {
			continue
		}
		for _, action := range cond.Actions {
			if seen[action] {
				continue
			}
			seen[action] = true
			recommendations = append(recommendations, action)
		}
	}

	if len(recommendations) == 0 {
		// "No condition matched" is a valid result; fall back to general
		// monitoring guidance.
		recommendations = append(recommendations,
			"Monitor your pet closely and note any new or worsening symptoms",
			"Consult a veterinarian if symptoms persist beyond 24-48 hours",
		)
	}

	return recommendations
}

func findCondition(kb *knowledge.Base, id string) (knowledge.Condition, bool) {
	for _, c := range kb.Conditions() {
		if c.ID == id {
			return c, true
		}
	}
	return knowledge.Condition{}, false
}

// petNotes derives advisory notes from the pet profile.
func petNotes(p pet.Profile) []string {
	var notes []string
	if p.IsSenior() {
		notes = append(notes, "Senior pets may require more frequent monitoring and veterinary care.")
	}
	if p.AgeYears > 0 && p.AgeYears < 1 {
		notes = append(notes, "Young pets can deteriorate quickly - monitor closely for changes.")
	}
	if len(p.MedicalHistory) > 0 {
		notes = append(notes, "Consider the pet's medical history when evaluating these symptoms.")
	}
	if len(p.CurrentMedications) > 0 {
		notes = append(notes, "Current medications may affect symptoms or treatment options.")
	}
	return notes
}

// followUpQuestions suggests questions that would sharpen the assessment.
func followUpQuestions(kb *knowledge.Base, ranked []ConditionAssessment) []string {
	if len(ranked) == 0 {
		return []string{
			"How long have the symptoms been present?",
			"Have you noticed any changes in eating or drinking habits?",
			"Has your pet been exposed to any new environments or animals?",
		}
	}
	questions := []string{
		"When did you first notice these symptoms?",
		"Have the symptoms been getting better, worse, or staying the same?",
	}
	if cond, ok := findCondition(kb, ranked[0].ConditionID); ok && cond.Category != "" {
		questions = append(questions,
			fmt.Sprintf("Have you noticed any other %s symptoms?", cond.Category))
	}
	return questions
}

// explain summarizes the diagnostic reasoning in one line.
func explain(ranked []ConditionAssessment, emergency bool) string {
	if emergency {
		return "Emergency indicators detected; immediate veterinary attention takes precedence over the ranked assessment."
	}
	if len(ranked) == 0 {
		return "No specific conditions identified. Symptoms may be minor or require additional information."
	}
	top := ranked[0]
	return fmt.Sprintf("%s (confidence %.0f%%): matches %d of %d defining symptoms.",
		top.Name, top.Confidence*100, len(top.MatchedSymptoms),
		len(top.MatchedSymptoms)+len(top.MissingSymptoms))
}
