package dto

import (
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJobOrderRequest defines data for opening a job order.
type CreateJobOrderRequest struct {
	CompanyID     string          `json:"companyID" binding:"required"`
	EmployerName  string          `json:"employerName" binding:"required"`
	PositionTitle string          `json:"positionTitle" binding:"required"`
	NumPositions  int             `json:"numPositions" binding:"omitempty,min=1"`
	AgreedFee     decimal.Decimal `json:"agreedFee"`
	Currency      string          `json:"currency" binding:"required,len=3,uppercase"`
}

// CreateCandidateRequest defines data for adding a candidate to a job order.
type CreateCandidateRequest struct {
	JobOrderID     string `json:"jobOrderID" binding:"required"`
	FullName       string `json:"fullName" binding:"required"`
	PassportNumber string `json:"passportNumber"`
	Nationality    string `json:"nationality"`
}

// MoveStageRequest moves one candidate.
type MoveStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// BulkMoveStageRequest moves many candidates to the same stage.
type BulkMoveStageRequest struct {
	CandidateIDs []string `json:"candidateIDs" binding:"required,min=1,dive,required"`
	Stage        string   `json:"stage" binding:"required"`
}

// CostInput describes a cost independent of the candidate it is applied to.
type CostInput struct {
	CostType     string          `json:"costType" binding:"required,oneof=VISA MEDICAL TICKET TRAINING DOCUMENTATION OTHER"`
	VendorName   string          `json:"vendorName"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency" binding:"required,len=3,uppercase"`
	Reimbursable bool            `json:"reimbursable"`
	Description  string          `json:"description"`
	DateIncurred *time.Time      `json:"dateIncurred,omitempty"` // Defaults to today
}

// ToCostTemplate converts the input into a domain.CostTemplate.
func (in CostInput) ToCostTemplate() domain.CostTemplate {
	t := domain.CostTemplate{
		CostType:     domain.CostType(in.CostType),
		VendorName:   in.VendorName,
		Amount:       in.Amount,
		Currency:     in.Currency,
		Reimbursable: in.Reimbursable,
		Description:  in.Description,
	}
	if in.DateIncurred != nil {
		t.DateIncurred = *in.DateIncurred
	}
	return t
}

// RecordCostRequest records a cost against a single candidate.
type RecordCostRequest struct {
	CandidateID string `json:"-"` // From the path
	CostInput
}

// BulkAddCostRequest applies the same cost to many candidates.
type BulkAddCostRequest struct {
	CandidateIDs []string  `json:"candidateIDs" binding:"required,min=1,dive,required"`
	Cost         CostInput `json:"cost" binding:"required"`
}

// RecordCostResponse returns the stored cost and its WIP journal.
type RecordCostResponse struct {
	Cost    domain.CandidateCost `json:"cost"`
	Journal *JournalResponse     `json:"journal,omitempty"`
}
