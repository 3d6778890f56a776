package assessment

import (
	"fmt"

	"pet-care-advisor/internal/knowledge"
)

// EmergencyDirective leads the recommendation list whenever the emergency
// flag is raised.
const EmergencyDirective = "SEEK IMMEDIATE VETERINARY ATTENTION: go to the nearest emergency clinic now."

// classifyEmergency raises the emergency flag on either of two signals:
//
//   - any reported symptom in the fixed emergency-indicator set; this check
//     runs unconditionally and cannot be suppressed by low confidence
//     elsewhere, a single critical symptom is sufficient
//   - any condition flagged is_emergency_indicator that cleared its own
//     confidence threshold and entered the ranking
func classifyEmergency(kb *knowledge.Base, in symptomInput, ranked []ConditionAssessment) (bool, []string) {
	var alerts []string

	for _, id := range in.IDs {
		if !kb.IsEmergencySymptom(id) {
			continue
		}
		name := id
		if s, ok := kb.Symptom(id); ok {
			name = s.Name
		}
		alerts = append(alerts, fmt.Sprintf("URGENT: %s requires immediate veterinary attention", name))
	}

	for _, ca := range ranked {
		cond, ok := findCondition(kb, ca.ConditionID)
		if ok && cond.IsEmergencyIndicator {
			alerts = append(alerts, fmt.Sprintf("URGENT: symptoms are consistent with %s", cond.Name))
		}
	}

	return len(alerts) > 0, alerts
}
