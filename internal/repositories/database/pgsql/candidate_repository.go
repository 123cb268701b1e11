package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxCandidateRepository stores job orders, candidates and stage history.
type PgxCandidateRepository struct {
	BaseRepository
}

var _ portsrepo.CandidateRepositoryFacade = (*PgxCandidateRepository)(nil)

const jobOrderColumns = `
	job_order_id, company_id, employer_name, position_title, num_positions, agreed_fee,
	currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

const candidateColumns = `
	candidate_id, job_order_id, full_name, passport_number, nationality, current_stage,
	deployed_date, created_at, created_by, last_updated_at, last_updated_by`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var stage string
	err := row.Scan(
		&c.CandidateID,
		&c.JobOrderID,
		&c.FullName,
		&c.PassportNumber,
		&c.Nationality,
		&stage,
		&c.DeployedDate,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	c.CurrentStage = domain.Stage(stage)
	if c.DeployedDate != nil {
		d := domain.DateOnly(*c.DeployedDate)
		c.DeployedDate = &d
	}
	return &c, nil
}

func (r *PgxCandidateRepository) FindJobOrderByID(ctx context.Context, jobOrderID string) (*domain.JobOrder, error) {
	var j domain.JobOrder
	err := r.DB.QueryRow(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE job_order_id = $1`, jobOrderID).Scan(
		&j.JobOrderID,
		&j.CompanyID,
		&j.EmployerName,
		&j.PositionTitle,
		&j.NumPositions,
		&j.AgreedFee,
		&j.Currency,
		&j.IsActive,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job order %s: %w", jobOrderID, err)
	}
	return &j, nil
}

func (r *PgxCandidateRepository) SaveJobOrder(ctx context.Context, j domain.JobOrder) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO job_orders (`+jobOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.JobOrderID, j.CompanyID, j.EmployerName, j.PositionTitle, j.NumPositions, j.AgreedFee,
		j.Currency, j.IsActive, j.CreatedAt, j.CreatedBy, j.LastUpdatedAt, j.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save job order "+j.JobOrderID)
	}
	return nil
}

func (r *PgxCandidateRepository) FindCandidateByID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	c, err := scanCandidate(r.DB.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE candidate_id = $1`, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find candidate %s: %w", candidateID, err)
	}
	return c, nil
}

// LockCandidate selects the candidate FOR UPDATE. Outside a transaction the
// lock is released as soon as the statement completes.
func (r *PgxCandidateRepository) LockCandidate(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	c, err := scanCandidate(r.DB.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE candidate_id = $1 FOR UPDATE`, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock candidate %s: %w", candidateID, err)
	}
	return c, nil
}

func (r *PgxCandidateRepository) SaveCandidate(ctx context.Context, c domain.Candidate) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.CandidateID, c.JobOrderID, c.FullName, c.PassportNumber, c.Nationality, string(c.CurrentStage),
		c.DeployedDate, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save candidate "+c.CandidateID)
	}
	return nil
}

// UpdateCandidateStage never clears an existing deployed_date.
func (r *PgxCandidateRepository) UpdateCandidateStage(ctx context.Context, c domain.Candidate) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE candidates
		SET current_stage = $2,
		    deployed_date = COALESCE(deployed_date, $3),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE candidate_id = $1`,
		c.CandidateID, string(c.CurrentStage), c.DeployedDate, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update stage of candidate %s: %w", c.CandidateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCandidateRepository) AppendStageTransition(ctx context.Context, t domain.StageTransition) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO stage_transitions (transition_id, candidate_id, old_stage, new_stage, transitioned_at, transitioned_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.TransitionID, t.CandidateID, string(t.OldStage), string(t.NewStage), t.TransitionedAt, t.TransitionedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to append stage transition for candidate "+t.CandidateID)
	}
	return nil
}

func (r *PgxCandidateRepository) ListStageTransitions(ctx context.Context, candidateID string) ([]domain.StageTransition, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT transition_id, candidate_id, old_stage, new_stage, transitioned_at, transitioned_by
		FROM stage_transitions
		WHERE candidate_id = $1
		ORDER BY transitioned_at, transition_id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage transitions: %w", err)
	}
	defer rows.Close()

	transitions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StageTransition, error) {
		var t domain.StageTransition
		var oldStage, newStage string
		err := row.Scan(&t.TransitionID, &t.CandidateID, &oldStage, &newStage, &t.TransitionedAt, &t.TransitionedBy)
		t.OldStage = domain.Stage(oldStage)
		t.NewStage = domain.Stage(newStage)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stage transitions: %w", err)
	}
	return transitions, nil
}
