package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func copyJournal(j domain.Journal) domain.Journal {
	j.Lines = cloneLines(j.Lines)
	return j
}

func companyHasJournals(st *state, companyID string) bool {
	for _, j := range st.journals {
		if j.CompanyID == companyID {
			return true
		}
	}
	return false
}

// journalBefore orders journals newest first: date, then posting time, then id.
func journalBefore(a, b domain.Journal) bool {
	if !a.JournalDate.Equal(b.JournalDate) {
		return a.JournalDate.After(b.JournalDate)
	}
	if !a.PostedAt.Equal(b.PostedAt) {
		return a.PostedAt.After(b.PostedAt)
	}
	return a.JournalID > b.JournalID
}

func (r *repo) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	var out *domain.Journal
	err := r.h.read(func(st *state) error {
		j, ok := st.journals[journalID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = ptr(copyJournal(j))
		return nil
	})
	return out, err
}

func (r *repo) FindJournalBySource(_ context.Context, source domain.JournalSource) (*domain.Journal, error) {
	var out *domain.Journal
	err := r.h.read(func(st *state) error {
		id, ok := st.sources[source]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = ptr(copyJournal(st.journals[id]))
		return nil
	})
	return out, err
}

func (r *repo) ListJournalsByCompany(_ context.Context, companyID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var cursor *domain.Journal
	if nextToken != nil && *nextToken != "" {
		date, at, id, err := pagination.DecodeKeysetToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &domain.Journal{JournalDate: date, PostedAt: at, JournalID: id}
	}

	var page []domain.Journal
	var token *string
	err := r.h.read(func(st *state) error {
		var all []domain.Journal
		for _, j := range st.journals {
			if j.CompanyID != companyID {
				continue
			}
			if cursor != nil && !journalBefore(*cursor, j) {
				continue
			}
			all = append(all, j)
		}
		sort.Slice(all, func(i, k int) bool { return journalBefore(all[i], all[k]) })

		if len(all) > limit {
			all = all[:limit]
			last := all[limit-1]
			token = ptr(pagination.EncodeKeysetToken(last.JournalDate, last.PostedAt, last.JournalID))
		}
		page = make([]domain.Journal, len(all))
		for i, j := range all {
			page[i] = copyJournal(j)
		}
		return nil
	})
	return page, token, err
}

func (r *repo) CompanyHasJournals(_ context.Context, companyID string) (bool, error) {
	var has bool
	err := r.h.read(func(st *state) error {
		has = companyHasJournals(st, companyID)
		return nil
	})
	return has, err
}

func (r *repo) SaveJournal(_ context.Context, journal domain.Journal) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.journals[journal.JournalID]; ok {
			return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, journal.JournalID)
		}
		if existing, ok := st.sources[journal.Source]; ok {
			return fmt.Errorf("%w: %s %s has journal %s", apperrors.ErrAlreadyPosted,
				journal.Source.Type, journal.Source.ID, existing)
		}
		st.journals[journal.JournalID] = copyJournal(journal)
		st.sources[journal.Source] = journal.JournalID
		return nil
	})
}

func (r *repo) GetTrialBalanceData(_ context.Context, companyID string) ([]domain.TrialBalanceRow, error) {
	var rows []domain.TrialBalanceRow
	err := r.h.read(func(st *state) error {
		totals := make(map[string]*domain.TrialBalanceRow)
		for _, j := range st.journals {
			if j.CompanyID != companyID {
				continue
			}
			for _, l := range j.Lines {
				row, ok := totals[l.AccountCode]
				if !ok {
					row = &domain.TrialBalanceRow{AccountCode: l.AccountCode, Debit: decimal.Zero, Credit: decimal.Zero}
					totals[l.AccountCode] = row
				}
				row.Debit = row.Debit.Add(l.Debit)
				row.Credit = row.Credit.Add(l.Credit)
			}
		}
		rows = make([]domain.TrialBalanceRow, 0, len(totals))
		for _, row := range totals {
			rows = append(rows, *row)
		}
		sort.Slice(rows, func(i, k int) bool { return rows[i].AccountCode < rows[k].AccountCode })
		return nil
	})
	return rows, err
}
