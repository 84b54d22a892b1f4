package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tiercheck/internal/verify"
	"tiercheck/pkg/platform/sentinel"
)

// PostgresStore persists step results and their outcomes. Inserts are
// idempotent via ON CONFLICT DO NOTHING so a re-saved step never duplicates
// rows.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the result tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS verification_steps (
			id UUID PRIMARY KEY,
			topic TEXT NOT NULL,
			partition INT NOT NULL,
			fetch_offset BIGINT NOT NULL,
			passed BOOLEAN NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS verification_outcomes (
			step_id UUID NOT NULL REFERENCES verification_steps (id),
			position INT NOT NULL,
			check_name TEXT NOT NULL,
			interaction_type TEXT NOT NULL,
			passed BOOLEAN NOT NULL,
			violation TEXT NOT NULL,
			expected TEXT NOT NULL,
			observed TEXT NOT NULL,
			observed_count INT NOT NULL,
			detail TEXT NOT NULL,
			PRIMARY KEY (step_id, position)
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure report schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, result *verify.StepResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save step: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO verification_steps (id, topic, partition, fetch_offset, passed, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`,
		result.ID,
		result.Partition.Topic,
		result.Partition.Partition,
		result.FetchOffset,
		result.Passed,
		result.StartedAt,
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert step: %w", err)
	}

	for i, o := range result.Outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO verification_outcomes (
				step_id, position, check_name, interaction_type, passed,
				violation, expected, observed, observed_count, detail
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (step_id, position) DO NOTHING
		`,
			result.ID,
			i,
			string(o.Check),
			o.Type.String(),
			o.Passed,
			string(o.Violation),
			o.Expected,
			o.Observed,
			o.ObservedCount,
			o.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save step: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*verify.StepResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, topic, partition, fetch_offset, passed, started_at, finished_at
		FROM verification_steps
		WHERE id = $1
	`, id)

	result, err := scanStep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("step %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	outcomes, err := s.loadOutcomes(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range outcomes {
		outcomes[i].Partition = result.Partition
	}
	result.Outcomes = outcomes
	return result, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*verify.StepResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, partition, fetch_offset, passed, started_at, finished_at
		FROM verification_steps
		ORDER BY started_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var results []*verify.StepResult
	for rows.Next() {
		result, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}

	for _, result := range results {
		outcomes, err := s.loadOutcomes(ctx, result.ID)
		if err != nil {
			return nil, err
		}
		for i := range outcomes {
			outcomes[i].Partition = result.Partition
		}
		result.Outcomes = outcomes
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStep(row rowScanner) (*verify.StepResult, error) {
	var result verify.StepResult
	err := row.Scan(
		&result.ID,
		&result.Partition.Topic,
		&result.Partition.Partition,
		&result.FetchOffset,
		&result.Passed,
		&result.StartedAt,
		&result.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan step: %w", err)
	}
	return &result, nil
}

func (s *PostgresStore) loadOutcomes(ctx context.Context, stepID uuid.UUID) ([]verify.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT check_name, interaction_type, passed, violation, expected, observed, observed_count, detail
		FROM verification_outcomes
		WHERE step_id = $1
		ORDER BY position
	`, stepID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []verify.Outcome
	for rows.Next() {
		var (
			o               verify.Outcome
			checkName       string
			interactionType string
			violation       string
		)
		err := rows.Scan(&checkName, &interactionType, &o.Passed, &violation, &o.Expected, &o.Observed, &o.ObservedCount, &o.Detail)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Check = verify.Check(checkName)
		o.Violation = verify.Violation(violation)
		for _, t := range verify.InteractionTypes {
			if t.String() == interactionType {
				o.Type = t
				break
			}
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}
