package dto

import (
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID    string                `json:"journalID"`
	CompanyID    string                `json:"companyID"`
	Date         time.Time             `json:"date"`
	Description  string                `json:"description"`
	Reference    string                `json:"reference"`
	CurrencyCode string                `json:"currencyCode"`
	SourceType   string                `json:"sourceType"`
	SourceID     string                `json:"sourceID"`
	PostedAt     time.Time             `json:"postedAt"`
	PostedBy     string                `json:"postedBy"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return JournalResponse{
		JournalID:    j.JournalID,
		CompanyID:    j.CompanyID,
		Date:         j.JournalDate,
		Description:  j.Description,
		Reference:    j.Reference,
		CurrencyCode: j.CurrencyCode,
		SourceType:   string(j.Source.Type),
		SourceID:     j.Source.ID,
		PostedAt:     j.PostedAt,
		PostedBy:     j.PostedBy,
		TotalDebit:   j.TotalDebit(),
		TotalCredit:  j.TotalCredit(),
		Lines:        lines,
	}
}

// ToJournalResponsePtr is ToJournalResponse for optional journals.
func ToJournalResponsePtr(j *domain.Journal) *JournalResponse {
	if j == nil {
		return nil
	}
	r := ToJournalResponse(j)
	return &r
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals      []JournalResponse `json:"journals"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// ToListJournalsResponse converts a page of journals to DTO.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) ListJournalsResponse {
	list := make([]JournalResponse, len(journals))
	for i := range journals {
		list[i] = ToJournalResponse(&journals[i])
	}
	resp := ListJournalsResponse{Journals: list}
	if nextToken != nil {
		resp.NextPageToken = *nextToken
	}
	return resp
}
