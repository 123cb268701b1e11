package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

// bulkService applies posting operations to many candidates. Each candidate
// gets its own transaction; a failure is recorded and the loop moves on.
type bulkService struct {
	BaseService
	posting portssvc.PostingSvcFacade
}

// NewBulkService creates the bulk operators on top of posting.
func NewBulkService(posting portssvc.PostingSvcFacade, options ...ServiceOption) portssvc.BulkSvc {
	return &bulkService{BaseService: newBaseService(options...), posting: posting}
}

var _ portssvc.BulkSvc = (*bulkService)(nil)

// BulkMoveStage moves every candidate to stage. Updated counts candidates
// whose move committed, Deployed those among them whose move posted a new
// deployment journal.
func (s *bulkService) BulkMoveStage(ctx context.Context, candidateIDs []string, stage domain.Stage, userID string) domain.BulkStageResult {
	result := domain.BulkStageResult{Total: len(candidateIDs), Failures: []domain.BulkFailure{}}

	for _, id := range candidateIDs {
		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, domain.BulkFailure{CandidateID: id, Error: err.Error()})
			continue
		}

		change, err := s.posting.MoveStage(ctx, id, stage, userID)
		if err != nil {
			result.Failures = append(result.Failures, domain.BulkFailure{CandidateID: id, Error: err.Error()})
			continue
		}
		result.Updated++
		if change.JournalPosted {
			result.Deployed++
		}
	}

	s.LogInfo(ctx, "Bulk stage move finished",
		slog.String("stage", string(stage)),
		slog.Int("total", result.Total),
		slog.Int("updated", result.Updated),
		slog.Int("deployed", result.Deployed),
		slog.Int("failed", len(result.Failures)))
	return result
}

// BulkAddCost records one cost per candidate from template.
func (s *bulkService) BulkAddCost(ctx context.Context, candidateIDs []string, template domain.CostTemplate, userID string) domain.BulkCostResult {
	result := domain.BulkCostResult{Total: len(candidateIDs), Failures: []domain.BulkFailure{}}

	input := dto.CostInput{
		CostType:     string(template.CostType),
		VendorName:   template.VendorName,
		Amount:       template.Amount,
		Currency:     template.Currency,
		Reimbursable: template.Reimbursable,
		Description:  template.Description,
	}
	if !template.DateIncurred.IsZero() {
		incurred := template.DateIncurred
		input.DateIncurred = &incurred
	}

	for _, id := range candidateIDs {
		if err := ctx.Err(); err != nil {
			result.Failures = append(result.Failures, domain.BulkFailure{CandidateID: id, Error: err.Error()})
			continue
		}

		_, _, err := s.posting.RecordCost(ctx, dto.RecordCostRequest{CandidateID: id, CostInput: input}, userID)
		if err != nil {
			result.Failures = append(result.Failures, domain.BulkFailure{CandidateID: id, Error: err.Error()})
			continue
		}
		result.Created++
	}

	s.LogInfo(ctx, "Bulk cost creation finished",
		slog.String("cost_type", string(template.CostType)),
		slog.Int("total", result.Total),
		slog.Int("created", result.Created),
		slog.Int("failed", len(result.Failures)))
	return result
}
