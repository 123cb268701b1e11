package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/models"
	"github.com/SscSPs/placement_ledger/internal/utils/mapping"
	"github.com/SscSPs/placement_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// PgxJournalRepository stores posted journals and their lines. Journals are
// append-only: there is no update or delete.
type PgxJournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `
	journal_id, company_id, journal_date, description, reference, currency_code,
	source_type, source_id, posted_at, posted_by`

const journalLineColumns = `line_id, journal_id, line_no, account_code, debit, credit, description`

// SaveJournal inserts the header and queues every line in one batch. The
// caller owns the transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.JournalID, m.CompanyID, m.JournalDate, m.Description, m.Reference, m.CurrencyCode,
		m.SourceType, m.SourceID, m.PostedAt, m.PostedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_journals_source") {
			return fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, m.SourceType, m.SourceID)
		}
		return mapPgError(err, "failed to insert journal "+m.JournalID)
	}

	lines := mapping.ToModelJournalLines(journal.Lines)
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO journal_lines (`+journalLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.LineID, m.JournalID, l.LineNo, l.AccountCode, l.Debit, l.Credit, l.Description,
		)
	}
	br := r.DB.SendBatch(ctx, batch)
	defer br.Close()

	for range lines {
		if _, err := br.Exec(); err != nil {
			return mapPgError(err, "failed to insert journal lines for "+m.JournalID)
		}
	}
	return nil
}

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.JournalDate,
		&m.Description,
		&m.Reference,
		&m.CurrencyCode,
		&m.SourceType,
		&m.SourceID,
		&m.PostedAt,
		&m.PostedBy,
	)
	return m, err
}

// findLines loads the lines of every listed journal, grouped by journal id.
func (r *PgxJournalRepository) findLines(ctx context.Context, journalIDs []string) (map[string][]models.JournalLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+journalLineColumns+`
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_no`, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal lines: %w", err)
	}

	byJournal := make(map[string][]models.JournalLine, len(journalIDs))
	for _, l := range lines {
		byJournal[l.JournalID] = append(byJournal[l.JournalID], l)
	}
	return byJournal, nil
}

func (r *PgxJournalRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Journal, error) {
	m, err := scanJournal(r.DB.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}
	lines, err := r.findLines(ctx, []string{m.JournalID})
	if err != nil {
		return nil, err
	}
	journal := mapping.ToDomainJournal(m, lines[m.JournalID])
	return &journal, nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return r.findOne(ctx, `journal_id = $1`, journalID)
}

func (r *PgxJournalRepository) FindJournalBySource(ctx context.Context, source domain.JournalSource) (*domain.Journal, error) {
	return r.findOne(ctx, `source_type = $1 AND source_id = $2`, string(source.Type), source.ID)
}

// ListJournalsByCompany pages newest first on (journal_date, posted_at,
// journal_id). The token encodes the last row of the previous page.
func (r *PgxJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if nextToken != nil && *nextToken != "" {
		date, postedAt, journalID, decodeErr := pagination.DecodeKeysetToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr)
		}
		rows, err = r.DB.Query(ctx, `
			SELECT `+journalColumns+`
			FROM journals
			WHERE company_id = $1 AND (journal_date, posted_at, journal_id) < ($2, $3, $4)
			ORDER BY journal_date DESC, posted_at DESC, journal_id DESC
			LIMIT $5`, companyID, date, postedAt, journalID, limit+1)
	} else {
		rows, err = r.DB.Query(ctx, `
			SELECT `+journalColumns+`
			FROM journals
			WHERE company_id = $1
			ORDER BY journal_date DESC, posted_at DESC, journal_id DESC
			LIMIT $2`, companyID, limit+1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals for company %s: %w", companyID, err)
	}
	defer rows.Close()

	headers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Journal, error) {
		return scanJournal(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan journals: %w", err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeKeysetToken(last.JournalDate, last.PostedAt, last.JournalID)
		next = &token
	}
	if len(headers) == 0 {
		return []domain.Journal{}, nil, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.JournalID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	journals := make([]domain.Journal, len(headers))
	for i, h := range headers {
		journals[i] = mapping.ToDomainJournal(h, lines[h.JournalID])
	}
	return journals, next, nil
}

func (r *PgxJournalRepository) CompanyHasJournals(ctx context.Context, companyID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journals WHERE company_id = $1)`, companyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check journals for company %s: %w", companyID, err)
	}
	return exists, nil
}
