package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a row of the journals table. Lines are stored separately.
type Journal struct {
	JournalID    string    `db:"journal_id"`
	CompanyID    string    `db:"company_id"`
	JournalDate  time.Time `db:"journal_date"`
	Description  string    `db:"description"`
	Reference    string    `db:"reference"`
	CurrencyCode string    `db:"currency_code"`
	SourceType   string    `db:"source_type"`
	SourceID     string    `db:"source_id"`
	PostedAt     time.Time `db:"posted_at"`
	PostedBy     string    `db:"posted_by"`
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
