package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pet-care-advisor/internal/knowledge"
)

// AlertSender delivers emergency notifications. We define it here to decouple
// from the specific delivery implementation.
type AlertSender interface {
	SendEmergencyAlert(ctx context.Context, a *Assessment) error
}

type Service interface {
	Assess(ctx context.Context, in Input) (*Assessment, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Symptoms() []knowledge.Symptom
	Conditions() []knowledge.Condition
	ReloadKnowledge() error
}

type service struct {
	store  *knowledge.Store
	repo   Repository
	alerts AlertSender // nil disables alerting
	logf   func(format string, args ...any)
}

func NewService(store *knowledge.Store, repo Repository, alerts AlertSender, logf func(string, ...any)) Service {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &service{
		store:  store,
		repo:   repo,
		alerts: alerts,
		logf:   logf,
	}
}

// Assess runs one diagnostic session against the current knowledge base
// snapshot. Persistence and alert delivery never fail the assessment itself.
func (s *service) Assess(ctx context.Context, in Input) (*Assessment, error) {
	session := NewSession(s.store.Snapshot())
	result, err := session.Run(in)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		ID:        session.ID,
		Pet:       in.Pet,
		Input:     in.Symptoms,
		Result:    *result,
		Emergency: result.Emergency,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, a); err != nil && !errors.Is(err, ErrHistoryUnavailable) {
		s.logf("failed to save assessment %s: %v", a.ID, err)
	}

	if a.Emergency && s.alerts != nil {
		// Alert delivery happens in the background; the caller gets the
		// result immediately.
		go func(a Assessment) {
			bgCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.alerts.SendEmergencyAlert(bgCtx, &a); err != nil {
				s.logf("failed to send emergency alert for %s: %v", a.ID, err)
			}
		}(*a)
	}

	return a, nil
}

func (s *service) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Symptoms() []knowledge.Symptom {
	return s.store.Snapshot().Symptoms()
}

func (s *service) Conditions() []knowledge.Condition {
	return s.store.Snapshot().Conditions()
}

func (s *service) ReloadKnowledge() error {
	if err := s.store.Reload(); err != nil {
		return fmt.Errorf("knowledge reload failed: %w", err)
	}
	return nil
}
