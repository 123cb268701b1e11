package mapping

import (
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal. Lines are
// converted separately with ToModelJournalLines.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		CompanyID:    d.CompanyID,
		JournalDate:  domain.DateOnly(d.JournalDate),
		Description:  d.Description,
		Reference:    d.Reference,
		CurrencyCode: d.CurrencyCode,
		SourceType:   string(d.Source.Type),
		SourceID:     d.Source.ID,
		PostedAt:     d.PostedAt,
		PostedBy:     d.PostedBy,
	}
}

// ToDomainJournal converts a model Journal and its lines to a domain Journal
func ToDomainJournal(m models.Journal, lines []models.JournalLine) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		CompanyID:    m.CompanyID,
		JournalDate:  domain.DateOnly(m.JournalDate),
		Description:  m.Description,
		Reference:    m.Reference,
		CurrencyCode: m.CurrencyCode,
		Source:       domain.JournalSource{Type: domain.SourceType(m.SourceType), ID: m.SourceID},
		PostedAt:     m.PostedAt,
		PostedBy:     m.PostedBy,
		Lines:        ToDomainJournalLines(lines),
	}
}

// ToModelJournalLines converts domain lines to model lines
func ToModelJournalLines(ds []domain.JournalLine) []models.JournalLine {
	ms := make([]models.JournalLine, len(ds))
	for i, d := range ds {
		ms[i] = models.JournalLine{
			LineID:      d.LineID,
			JournalID:   d.JournalID,
			LineNo:      d.LineNo,
			AccountCode: d.AccountCode,
			Debit:       d.Debit,
			Credit:      d.Credit,
			Description: d.Description,
		}
	}
	return ms
}

// ToDomainJournalLines converts model lines to domain lines
func ToDomainJournalLines(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalLine{
			LineID:      m.LineID,
			JournalID:   m.JournalID,
			LineNo:      m.LineNo,
			AccountCode: m.AccountCode,
			Debit:       m.Debit,
			Credit:      m.Credit,
			Description: m.Description,
		}
	}
	return ds
}
