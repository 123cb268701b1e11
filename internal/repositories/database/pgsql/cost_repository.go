package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxCostRepository stores candidate costs.
type PgxCostRepository struct {
	BaseRepository
}

var _ portsrepo.CostRepositoryFacade = (*PgxCostRepository)(nil)

const costColumns = `
	cost_id, candidate_id, cost_type, vendor_name, amount, currency_code, reimbursable,
	description, date_incurred, bill_id, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCost(row pgx.Row) (domain.CandidateCost, error) {
	var c domain.CandidateCost
	var costType string
	err := row.Scan(
		&c.CostID,
		&c.CandidateID,
		&costType,
		&c.VendorName,
		&c.Amount,
		&c.Currency,
		&c.Reimbursable,
		&c.Description,
		&c.DateIncurred,
		&c.BillID,
		&c.JournalID,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	c.CostType = domain.CostType(costType)
	c.DateIncurred = domain.DateOnly(c.DateIncurred)
	return c, err
}

func (r *PgxCostRepository) FindCostByID(ctx context.Context, costID string) (*domain.CandidateCost, error) {
	c, err := scanCost(r.DB.QueryRow(ctx, `SELECT `+costColumns+` FROM candidate_costs WHERE cost_id = $1`, costID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost %s: %w", costID, err)
	}
	return &c, nil
}

func (r *PgxCostRepository) FindCostsByCandidateID(ctx context.Context, candidateID string) ([]domain.CandidateCost, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+costColumns+`
		FROM candidate_costs
		WHERE candidate_id = $1
		ORDER BY date_incurred, created_at, cost_id`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs for candidate %s: %w", candidateID, err)
	}
	defer rows.Close()

	costs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CandidateCost, error) {
		return scanCost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan costs: %w", err)
	}
	return costs, nil
}

func (r *PgxCostRepository) SaveCandidateCost(ctx context.Context, c domain.CandidateCost) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO candidate_costs (`+costColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		c.CostID, c.CandidateID, string(c.CostType), c.VendorName, c.Amount, c.Currency, c.Reimbursable,
		c.Description, c.DateIncurred, c.BillID, c.JournalID,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save cost "+c.CostID)
	}
	return nil
}

// MarkCostPosted only updates costs without a journal, so a second posting
// affects no row.
func (r *PgxCostRepository) MarkCostPosted(ctx context.Context, costID, journalID, userID string, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE candidate_costs
		SET journal_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE cost_id = $1 AND journal_id IS NULL`,
		costID, journalID, at, userID,
	)
	if err != nil {
		return mapPgError(err, "failed to mark cost "+costID+" posted")
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.FindCostByID(ctx, costID); err != nil {
		return err
	}
	return fmt.Errorf("%w: cost %s", apperrors.ErrAlreadyPosted, costID)
}

func (r *PgxCostRepository) LinkCostsToBill(ctx context.Context, billID string, costIDs []string) error {
	if len(costIDs) == 0 {
		return nil
	}
	tag, err := r.DB.Exec(ctx, `
		UPDATE candidate_costs SET bill_id = $1
		WHERE cost_id = ANY($2) AND bill_id IS NULL`,
		billID, costIDs,
	)
	if err != nil {
		return mapPgError(err, "failed to link costs to bill "+billID)
	}
	if int(tag.RowsAffected()) != len(costIDs) {
		return fmt.Errorf("%w: %d of %d costs could not be linked to bill %s",
			apperrors.ErrValidation, len(costIDs)-int(tag.RowsAffected()), len(costIDs), billID)
	}
	return nil
}
