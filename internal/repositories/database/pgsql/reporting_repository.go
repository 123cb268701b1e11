package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// GetTrialBalanceData sums every posted line of the company per account.
func (r *PgxJournalRepository) GetTrialBalanceData(ctx context.Context, companyID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			l.account_code,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE j.company_id = $1
		GROUP BY l.account_code
		ORDER BY l.account_code
	`

	rows, err := r.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}
