package services

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

// RecruitmentReaderSvc defines read operations for job orders and candidates
type RecruitmentReaderSvc interface {
	GetJobOrder(ctx context.Context, jobOrderID string) (*domain.JobOrder, error)
	GetCandidate(ctx context.Context, candidateID string) (*domain.Candidate, error)
	ListCandidateCosts(ctx context.Context, candidateID string) ([]domain.CandidateCost, error)

	// GetStageHistory returns the append-only transition log, oldest first.
	GetStageHistory(ctx context.Context, candidateID string) ([]domain.StageTransition, error)
}

// RecruitmentWriterSvc defines write operations for job orders and candidates
type RecruitmentWriterSvc interface {
	CreateJobOrder(ctx context.Context, req dto.CreateJobOrderRequest, creatorUserID string) (*domain.JobOrder, error)
	CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest, creatorUserID string) (*domain.Candidate, error)
}

// RecruitmentSvcFacade combines all recruitment-related service interfaces
type RecruitmentSvcFacade interface {
	RecruitmentReaderSvc
	RecruitmentWriterSvc
}
