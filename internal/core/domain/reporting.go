package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the per-account totals of a company's ledger.
type TrialBalance struct {
	CompanyID    string            `json:"companyID"`
	CurrencyCode string            `json:"currencyCode"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
}

// ProfitabilityItem is one converted amount in a profitability report.
// Unconverted marks an amount that is still in its original currency because
// no rate was available.
type ProfitabilityItem struct {
	Label       string          `json:"label"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	BaseAmount  decimal.Decimal `json:"baseAmount"`
	Unconverted bool            `json:"unconverted"`
}

// CandidateProfitability compares the placement fee with the candidate's costs
// in the company base currency.
type CandidateProfitability struct {
	CandidateID    string              `json:"candidateID"`
	BaseCurrency   string              `json:"baseCurrency"`
	Fee            ProfitabilityItem   `json:"fee"`
	Costs          []ProfitabilityItem `json:"costs"`
	TotalCost      decimal.Decimal     `json:"totalCost"`
	Margin         decimal.Decimal     `json:"margin"`
	HasUnconverted bool                `json:"hasUnconverted"`
}
