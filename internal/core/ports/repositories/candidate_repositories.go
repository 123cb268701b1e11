package repositories

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// CandidateReader defines read operations for job orders, candidates and their stage history
type CandidateReader interface {
	FindJobOrderByID(ctx context.Context, jobOrderID string) (*domain.JobOrder, error)
	FindCandidateByID(ctx context.Context, candidateID string) (*domain.Candidate, error)

	// ListStageTransitions returns the candidate's stage history, oldest first.
	ListStageTransitions(ctx context.Context, candidateID string) ([]domain.StageTransition, error)
}

// CandidateWriter defines write operations for job orders and candidates
type CandidateWriter interface {
	SaveJobOrder(ctx context.Context, jobOrder domain.JobOrder) error
	SaveCandidate(ctx context.Context, candidate domain.Candidate) error

	// LockCandidate loads the candidate and holds a row lock on it until the
	// surrounding transaction ends.
	LockCandidate(ctx context.Context, candidateID string) (*domain.Candidate, error)

	// UpdateCandidateStage persists CurrentStage, DeployedDate and the update audit fields.
	UpdateCandidateStage(ctx context.Context, candidate domain.Candidate) error

	AppendStageTransition(ctx context.Context, transition domain.StageTransition) error
}

// CandidateRepositoryFacade combines all candidate-related repository interfaces
type CandidateRepositoryFacade interface {
	CandidateReader
	CandidateWriter
}
