package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Save(ctx context.Context, a *Assessment) error
}

type postgresRepo struct {
	db *sql.DB
}

// NewRepository wraps the assessments table. A nil db yields a repository
// that rejects every call with ErrHistoryUnavailable, which keeps the
// service usable without a database.
func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	if r.db == nil {
		return nil, ErrHistoryUnavailable
	}

	query := `SELECT id, pet, input, result, emergency, created_at FROM assessments WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	var a Assessment
	var petJSON, inputJSON, resultJSON []byte

	err := row.Scan(
		&a.ID,
		&petJSON,
		&inputJSON,
		&resultJSON,
		&a.Emergency,
		&a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(petJSON, &a.Pet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pet: %w", err)
	}
	if err := json.Unmarshal(inputJSON, &a.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &a, nil
}

func (r *postgresRepo) Save(ctx context.Context, a *Assessment) error {
	if r.db == nil {
		return ErrHistoryUnavailable
	}

	petJSON, err := json.Marshal(a.Pet)
	if err != nil {
		return err
	}
	inputJSON, err := json.Marshal(a.Input)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assessments (id, pet, input, result, emergency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			pet = $2,
			input = $3,
			result = $4,
			emergency = $5
	`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, petJSON, inputJSON, resultJSON, a.Emergency, a.CreatedAt)
	return err
}
