package assessment

import (
	"github.com/google/uuid"

	"pet-care-advisor/internal/knowledge"
)

// Session runs one diagnostic query through the pipeline:
//
//	Received -> Normalized -> Matched -> Scored -> Classified -> Composed -> Complete
//
// Each transition is a pure function of the previous state's output and the
// immutable knowledge base snapshot taken at construction. Nothing is
// retried: any failure terminates the session in StateFailed with the
// captured error, never a partial result presented as success.
type Session struct {
	ID    uuid.UUID
	State State
	Err   error

	kb *knowledge.Base
}

// NewSession creates a session bound to a knowledge base snapshot. The
// snapshot stays valid for the whole run even if the store reloads
// concurrently.
func NewSession(kb *knowledge.Base) *Session {
	return &Session{
		ID:    uuid.New(),
		State: StateReceived,
		kb:    kb,
	}
}

func (s *Session) fail(err error) (*DiagnosticResult, error) {
	s.State = StateFailed
	s.Err = err
	return nil, err
}

// Run performs the assessment. It is a synchronous, non-blocking computation;
// concurrent sessions share only the read-only knowledge base.
func (s *Session) Run(in Input) (*DiagnosticResult, error) {
	species := in.Pet.NormalizedSpecies()
	if !s.kb.KnowsSpecies(species) {
		return s.fail(&UnknownSpeciesError{Species: in.Pet.Species})
	}

	normalized, err := normalize(s.kb, in.Symptoms)
	if err != nil {
		return s.fail(err)
	}
	s.State = StateNormalized

	matches := match(s.kb, species, normalized)
	s.State = StateMatched

	ranked := score(matches, in.Pet)
	s.State = StateScored

	// Runs unconditionally, independent of how conditions ranked.
	emergency, alerts := classifyEmergency(s.kb, normalized, ranked)
	s.State = StateClassified

	recommendations := compose(s.kb, ranked, emergency)
	s.State = StateComposed

	result := &DiagnosticResult{
		Conditions:          ranked,
		Emergency:           emergency,
		EmergencyAlerts:     alerts,
		Recommendations:     recommendations,
		Disclaimer:          s.kb.Meta().Disclaimer,
		Notes:               petNotes(in.Pet),
		FollowUpQuestions:   followUpQuestions(s.kb, ranked),
		Explanation:         explain(ranked, emergency),
		UnmatchedInputCount: normalized.UnmatchedCount,
	}
	s.State = StateComplete
	return result, nil
}
