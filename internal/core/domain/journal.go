package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType names the kind of business event a journal was posted for.
type SourceType string

const (
	SourceCost       SourceType = "COST"
	SourceDeployment SourceType = "DEPLOYMENT"
	SourceInvoice    SourceType = "INVOICE"
	SourceReceipt    SourceType = "RECEIPT"
	SourcePayment    SourceType = "PAYMENT"
	SourceManual     SourceType = "MANUAL"
)

// JournalSource links a journal back to the business event that produced it.
// At most one journal exists per (Type, ID).
type JournalSource struct {
	Type SourceType `json:"type"`
	ID   string     `json:"id"`
}

// Journal represents a single, balanced financial event in a company's base currency.
type Journal struct {
	JournalID    string        `json:"journalID"`
	CompanyID    string        `json:"companyID"`
	JournalDate  time.Time     `json:"journalDate"`
	Description  string        `json:"description"`
	Reference    string        `json:"reference"`
	CurrencyCode string        `json:"currencyCode"` // Company base currency
	Source       JournalSource `json:"source"`
	PostedAt     time.Time     `json:"postedAt"`
	PostedBy     string        `json:"postedBy"`
	Lines        []JournalLine `json:"lines"`
}

// JournalLine is one debit or credit against an account code. Exactly one of
// Debit and Credit is normally non-zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// DebitLine builds a debit line.
func DebitLine(account string, amount decimal.Decimal, description string) JournalLine {
	return JournalLine{AccountCode: account, Debit: amount, Credit: decimal.Zero, Description: description}
}

// CreditLine builds a credit line.
func CreditLine(account string, amount decimal.Decimal, description string) JournalLine {
	return JournalLine{AccountCode: account, Debit: decimal.Zero, Credit: amount, Description: description}
}

// TotalDebit sums the debit side.
func (j Journal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side.
func (j Journal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
