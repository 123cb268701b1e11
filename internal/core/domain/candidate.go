package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Stage is a step in the recruitment pipeline.
type Stage string

const (
	StageSourcing      Stage = "SOURCING"
	StageScreening     Stage = "SCREENING"
	StageDocumentation Stage = "DOCUMENTATION"
	StageVisa          Stage = "VISA"
	StageMedical       Stage = "MEDICAL"
	StageTicket        Stage = "TICKET"
	StageDeployed      Stage = "DEPLOYED"
	StageInvoiced      Stage = "INVOICED"
)

// Stages lists the pipeline in order.
var Stages = []Stage{
	StageSourcing, StageScreening, StageDocumentation, StageVisa,
	StageMedical, StageTicket, StageDeployed, StageInvoiced,
}

// ParseStage normalises s and reports whether it names a pipeline stage.
func ParseStage(s string) (Stage, bool) {
	st := Stage(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Stages {
		if known == st {
			return st, true
		}
	}
	return "", false
}

// JobOrder is a recruitment assignment from an employer with a per-candidate fee.
type JobOrder struct {
	JobOrderID    string          `json:"jobOrderID"`
	CompanyID     string          `json:"companyID"`
	EmployerName  string          `json:"employerName"`
	PositionTitle string          `json:"positionTitle"`
	NumPositions  int             `json:"numPositions"`
	AgreedFee     decimal.Decimal `json:"agreedFee"`
	Currency      string          `json:"currency"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// Candidate is an individual moving through the pipeline of a job order.
type Candidate struct {
	CandidateID    string     `json:"candidateID"`
	JobOrderID     string     `json:"jobOrderID"`
	FullName       string     `json:"fullName"`
	PassportNumber string     `json:"passportNumber"`
	Nationality    string     `json:"nationality"`
	CurrentStage   Stage      `json:"currentStage"`
	DeployedDate   *time.Time `json:"deployedDate,omitempty"` // Set once, never cleared
	AuditFields
}

// MoveTo changes the current stage and stamps DeployedDate on the first
// arrival in DEPLOYED. It returns the stage the candidate was in before.
func (c *Candidate) MoveTo(stage Stage, now time.Time) Stage {
	old := c.CurrentStage
	c.CurrentStage = stage
	if stage == StageDeployed && c.DeployedDate == nil {
		d := DateOnly(now)
		c.DeployedDate = &d
	}
	return old
}

// StageTransition is one entry of the append-only stage history.
type StageTransition struct {
	TransitionID   string    `json:"transitionID"`
	CandidateID    string    `json:"candidateID"`
	OldStage       Stage     `json:"oldStage"`
	NewStage       Stage     `json:"newStage"`
	TransitionedAt time.Time `json:"transitionedAt"`
	TransitionedBy string    `json:"transitionedBy"`
}
