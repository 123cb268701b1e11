package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// --- Job orders and candidates ---

func (r *repo) FindJobOrderByID(_ context.Context, jobOrderID string) (*domain.JobOrder, error) {
	var out *domain.JobOrder
	err := r.h.read(func(st *state) error {
		j, ok := st.jobOrders[jobOrderID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &j
		return nil
	})
	return out, err
}

func (r *repo) FindCandidateByID(_ context.Context, candidateID string) (*domain.Candidate, error) {
	var out *domain.Candidate
	err := r.h.read(func(st *state) error {
		c, ok := st.candidates[candidateID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

// LockCandidate is FindCandidateByID: the store lock already serialises
// transactions.
func (r *repo) LockCandidate(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	return r.FindCandidateByID(ctx, candidateID)
}

func (r *repo) ListStageTransitions(_ context.Context, candidateID string) ([]domain.StageTransition, error) {
	var out []domain.StageTransition
	err := r.h.read(func(st *state) error {
		for _, t := range st.transitions {
			if t.CandidateID == candidateID {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}

func (r *repo) SaveJobOrder(_ context.Context, jobOrder domain.JobOrder) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.jobOrders[jobOrder.JobOrderID]; ok {
			return fmt.Errorf("%w: job order %s", apperrors.ErrDuplicate, jobOrder.JobOrderID)
		}
		st.jobOrders[jobOrder.JobOrderID] = jobOrder
		return nil
	})
}

func (r *repo) SaveCandidate(_ context.Context, candidate domain.Candidate) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.candidates[candidate.CandidateID]; ok {
			return fmt.Errorf("%w: candidate %s", apperrors.ErrDuplicate, candidate.CandidateID)
		}
		if _, ok := st.jobOrders[candidate.JobOrderID]; !ok {
			return fmt.Errorf("%w: job order %s", apperrors.ErrNotFound, candidate.JobOrderID)
		}
		st.candidates[candidate.CandidateID] = candidate
		return nil
	})
}

func (r *repo) UpdateCandidateStage(_ context.Context, candidate domain.Candidate) error {
	return r.h.write(func(st *state) error {
		existing, ok := st.candidates[candidate.CandidateID]
		if !ok {
			return apperrors.ErrNotFound
		}
		existing.CurrentStage = candidate.CurrentStage
		if existing.DeployedDate == nil && candidate.DeployedDate != nil {
			existing.DeployedDate = ptr(*candidate.DeployedDate)
		}
		existing.LastUpdatedAt = candidate.LastUpdatedAt
		existing.LastUpdatedBy = candidate.LastUpdatedBy
		st.candidates[candidate.CandidateID] = existing
		return nil
	})
}

func (r *repo) AppendStageTransition(_ context.Context, transition domain.StageTransition) error {
	return r.h.write(func(st *state) error {
		st.transitions = append(st.transitions, transition)
		return nil
	})
}

// --- Costs ---

func (r *repo) FindCostByID(_ context.Context, costID string) (*domain.CandidateCost, error) {
	var out *domain.CandidateCost
	err := r.h.read(func(st *state) error {
		c, ok := st.costs[costID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *repo) FindCostsByCandidateID(_ context.Context, candidateID string) ([]domain.CandidateCost, error) {
	var out []domain.CandidateCost
	err := r.h.read(func(st *state) error {
		for _, c := range st.costs {
			if c.CandidateID == candidateID {
				out = append(out, c)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].DateIncurred.Equal(out[j].DateIncurred) {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return out[i].DateIncurred.Before(out[j].DateIncurred)
		})
		return nil
	})
	return out, err
}

func (r *repo) SaveCandidateCost(_ context.Context, cost domain.CandidateCost) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.costs[cost.CostID]; ok {
			return fmt.Errorf("%w: cost %s", apperrors.ErrDuplicate, cost.CostID)
		}
		if _, ok := st.candidates[cost.CandidateID]; !ok {
			return fmt.Errorf("%w: candidate %s", apperrors.ErrNotFound, cost.CandidateID)
		}
		st.costs[cost.CostID] = cost
		return nil
	})
}

func (r *repo) MarkCostPosted(_ context.Context, costID, journalID, userID string, at time.Time) error {
	return r.h.write(func(st *state) error {
		c, ok := st.costs[costID]
		if !ok {
			return apperrors.ErrNotFound
		}
		if c.JournalID != nil {
			return fmt.Errorf("%w: cost %s", apperrors.ErrAlreadyPosted, costID)
		}
		c.JournalID = ptr(journalID)
		c.LastUpdatedAt = at
		c.LastUpdatedBy = userID
		st.costs[costID] = c
		return nil
	})
}

func (r *repo) LinkCostsToBill(_ context.Context, billID string, costIDs []string) error {
	return r.h.write(func(st *state) error {
		for _, id := range costIDs {
			c, ok := st.costs[id]
			if !ok {
				return fmt.Errorf("%w: cost %s", apperrors.ErrNotFound, id)
			}
			c.BillID = ptr(billID)
			st.costs[id] = c
		}
		return nil
	})
}
