package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// CostReader defines read operations for candidate costs
type CostReader interface {
	FindCostByID(ctx context.Context, costID string) (*domain.CandidateCost, error)

	// FindCostsByCandidateID returns the candidate's costs ordered by incurred date.
	FindCostsByCandidateID(ctx context.Context, candidateID string) ([]domain.CandidateCost, error)
}

// CostWriter defines write operations for candidate costs
type CostWriter interface {
	SaveCandidateCost(ctx context.Context, cost domain.CandidateCost) error

	// MarkCostPosted links the cost to its journal. A cost that already has a
	// journal yields apperrors.ErrAlreadyPosted.
	MarkCostPosted(ctx context.Context, costID, journalID, userID string, at time.Time) error

	// LinkCostsToBill records billID on every listed cost.
	LinkCostsToBill(ctx context.Context, billID string, costIDs []string) error
}

// CostRepositoryFacade combines all cost-related repository interfaces
type CostRepositoryFacade interface {
	CostReader
	CostWriter
}
