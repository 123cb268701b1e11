package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

type recruitmentService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewRecruitmentService creates the service for job orders and candidates.
func NewRecruitmentService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.RecruitmentSvcFacade {
	return &recruitmentService{BaseService: newBaseService(options...), repos: repos}
}

var _ portssvc.RecruitmentSvcFacade = (*recruitmentService)(nil)

func (s *recruitmentService) GetJobOrder(ctx context.Context, jobOrderID string) (*domain.JobOrder, error) {
	jobOrder, err := s.repos.CandidateRepo.FindJobOrderByID(ctx, jobOrderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find job order", slog.String("job_order_id", jobOrderID))
		}
		return nil, err
	}
	return jobOrder, nil
}

func (s *recruitmentService) GetCandidate(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	candidate, err := s.repos.CandidateRepo.FindCandidateByID(ctx, candidateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find candidate", slog.String("candidate_id", candidateID))
		}
		return nil, err
	}
	return candidate, nil
}

func (s *recruitmentService) ListCandidateCosts(ctx context.Context, candidateID string) ([]domain.CandidateCost, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	costs, err := s.repos.CostRepo.FindCostsByCandidateID(ctx, candidateID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list candidate costs", slog.String("candidate_id", candidateID))
		return nil, fmt.Errorf("failed to list costs for candidate %s: %w", candidateID, err)
	}
	if costs == nil {
		return []domain.CandidateCost{}, nil
	}
	return costs, nil
}

func (s *recruitmentService) GetStageHistory(ctx context.Context, candidateID string) ([]domain.StageTransition, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	history, err := s.repos.CandidateRepo.ListStageTransitions(ctx, candidateID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stage transitions", slog.String("candidate_id", candidateID))
		return nil, fmt.Errorf("failed to list stage history for candidate %s: %w", candidateID, err)
	}
	if history == nil {
		return []domain.StageTransition{}, nil
	}
	return history, nil
}

// CreateJobOrder opens a job order under an existing company.
func (s *recruitmentService) CreateJobOrder(ctx context.Context, req dto.CreateJobOrderRequest, creatorUserID string) (*domain.JobOrder, error) {
	if _, err := s.repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s does not exist", apperrors.ErrValidation, req.CompanyID)
		}
		return nil, fmt.Errorf("failed to find company %s: %w", req.CompanyID, err)
	}
	currency := strings.ToUpper(req.Currency)
	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, currency)
	}
	if req.AgreedFee.IsNegative() {
		return nil, fmt.Errorf("%w: agreed fee cannot be negative", apperrors.ErrValidation)
	}
	positions := req.NumPositions
	if positions <= 0 {
		positions = 1
	}

	jobOrder := domain.JobOrder{
		JobOrderID:    s.NewID(),
		CompanyID:     req.CompanyID,
		EmployerName:  req.EmployerName,
		PositionTitle: req.PositionTitle,
		NumPositions:  positions,
		AgreedFee:     req.AgreedFee.Round(2),
		Currency:      currency,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.repos.CandidateRepo.SaveJobOrder(ctx, jobOrder); err != nil {
		s.LogError(ctx, err, "Failed to save job order", slog.String("company_id", req.CompanyID))
		return nil, fmt.Errorf("failed to create job order: %w", err)
	}

	s.LogInfo(ctx, "Job order created",
		slog.String("job_order_id", jobOrder.JobOrderID),
		slog.String("company_id", jobOrder.CompanyID))
	return &jobOrder, nil
}

// CreateCandidate adds a candidate to a job order in the SOURCING stage.
func (s *recruitmentService) CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest, creatorUserID string) (*domain.Candidate, error) {
	jobOrder, err := s.repos.CandidateRepo.FindJobOrderByID(ctx, req.JobOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: job order %s does not exist", apperrors.ErrValidation, req.JobOrderID)
		}
		return nil, fmt.Errorf("failed to find job order %s: %w", req.JobOrderID, err)
	}
	if !jobOrder.IsActive {
		return nil, fmt.Errorf("%w: job order %s is closed", apperrors.ErrValidation, req.JobOrderID)
	}

	candidate := domain.Candidate{
		CandidateID:    s.NewID(),
		JobOrderID:     jobOrder.JobOrderID,
		FullName:       req.FullName,
		PassportNumber: req.PassportNumber,
		Nationality:    req.Nationality,
		CurrentStage:   domain.StageSourcing,
		AuditFields:    domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.repos.CandidateRepo.SaveCandidate(ctx, candidate); err != nil {
		s.LogError(ctx, err, "Failed to save candidate", slog.String("job_order_id", req.JobOrderID))
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	s.LogInfo(ctx, "Candidate created",
		slog.String("candidate_id", candidate.CandidateID),
		slog.String("job_order_id", candidate.JobOrderID))
	return &candidate, nil
}
