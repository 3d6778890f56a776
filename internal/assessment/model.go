package assessment

import (
	"time"

	"github.com/google/uuid"

	"pet-care-advisor/internal/knowledge"
	"pet-care-advisor/internal/pet"
)

// State tracks a diagnostic session through its pipeline. Transitions are
// strictly forward; any failure moves the session to StateFailed.
type State string

const (
	StateReceived   State = "received"
	StateNormalized State = "normalized"
	StateMatched    State = "matched"
	StateScored     State = "scored"
	StateClassified State = "classified"
	StateComposed   State = "composed"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// Input is one assessment query: raw symptom phrases plus the pet profile.
type Input struct {
	Symptoms []string    `json:"symptoms"`
	Pet      pet.Profile `json:"pet"`
}

// symptomInput is the normalized form of an Input: canonical, deduplicated
// symptom ids in deterministic order.
type symptomInput struct {
	IDs            []string
	UnmatchedCount int
}

// matchResult records how a single condition overlaps the reported symptoms.
type matchResult struct {
	Condition knowledge.Condition
	Matched   []string
	Missing   []string
	Ratio     float64
}

// ConditionAssessment is one ranked candidate in the result.
type ConditionAssessment struct {
	ConditionID     string             `json:"condition_id"`
	Name            string             `json:"name"`
	Severity        knowledge.Severity `json:"severity"`
	Confidence      float64            `json:"confidence"`
	Rank            int                `json:"rank"`
	MatchRatio      float64            `json:"match_ratio"`
	MatchedSymptoms []string           `json:"matched_symptoms"`
	MissingSymptoms []string           `json:"missing_symptoms,omitempty"`
}

// DiagnosticResult is the complete outcome of one assessment. When Emergency
// is set the emergency message takes precedence in presentation, but the full
// ranking is still computed and retained.
type DiagnosticResult struct {
	Conditions          []ConditionAssessment `json:"conditions"`
	Emergency           bool                  `json:"emergency"`
	EmergencyAlerts     []string              `json:"emergency_alerts,omitempty"`
	Recommendations     []string              `json:"recommendations"`
	Disclaimer          string                `json:"disclaimer"`
	Notes               []string              `json:"notes,omitempty"`
	FollowUpQuestions   []string              `json:"follow_up_questions,omitempty"`
	Explanation         string                `json:"explanation,omitempty"`
	UnmatchedInputCount int                   `json:"unmatched_input_count"`
}

// Assessment is the persisted aggregate: one completed diagnostic session.
type Assessment struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Pet       pet.Profile      `json:"pet" db:"pet"`
	Input     []string         `json:"reported_symptoms" db:"input"`
	Result    DiagnosticResult `json:"result" db:"result"`
	Emergency bool             `json:"emergency" db:"emergency"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
