package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostType classifies a candidate cost.
type CostType string

const (
	CostVisa          CostType = "VISA"
	CostMedical       CostType = "MEDICAL"
	CostTicket        CostType = "TICKET"
	CostTraining      CostType = "TRAINING"
	CostDocumentation CostType = "DOCUMENTATION"
	CostOther         CostType = "OTHER"
)

// Label is the display name used in journal descriptions.
func (t CostType) Label() string {
	switch t {
	case CostVisa:
		return "Visa Fee"
	case CostMedical:
		return "Medical Test"
	case CostTicket:
		return "Air Ticket"
	case CostTraining:
		return "Training"
	case CostDocumentation:
		return "Documentation"
	}
	return "Other"
}

// CandidateCost is a cost incurred on behalf of a candidate. Once JournalID
// is set the amount and currency are frozen.
type CandidateCost struct {
	CostID       string          `json:"costID"`
	CandidateID  string          `json:"candidateID"`
	CostType     CostType        `json:"costType"`
	VendorName   string          `json:"vendorName,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Reimbursable bool            `json:"reimbursable"`
	Description  string          `json:"description,omitempty"`
	DateIncurred time.Time       `json:"dateIncurred"`
	BillID       *string         `json:"billID,omitempty"`
	JournalID    *string         `json:"journalID,omitempty"`
	AuditFields
}

// IsPosted reports whether the cost already has its WIP journal.
func (c CandidateCost) IsPosted() bool {
	return c.JournalID != nil
}

// CostTemplate describes a cost to be applied to one or more candidates.
type CostTemplate struct {
	CostType     CostType
	VendorName   string
	Amount       decimal.Decimal
	Currency     string
	Reimbursable bool
	Description  string
	DateIncurred time.Time
}

// NewCost instantiates the template for a candidate.
func (t CostTemplate) NewCost(costID, candidateID, userID string, now time.Time) CandidateCost {
	incurred := t.DateIncurred
	if incurred.IsZero() {
		incurred = now
	}
	return CandidateCost{
		CostID:       costID,
		CandidateID:  candidateID,
		CostType:     t.CostType,
		VendorName:   t.VendorName,
		Amount:       t.Amount,
		Currency:     t.Currency,
		Reimbursable: t.Reimbursable,
		Description:  t.Description,
		DateIncurred: DateOnly(incurred),
		AuditFields:  NewAuditFields(userID, now),
	}
}
