// ABOUTME: Vote and LP operations
// ABOUTME: Vote submission is an idempotent merge keyed on (deal, LP); LP deletion cascades to votes
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
)

// SubmitVote stores the LP's vote on the deal. Resubmitting overwrites only
// the supplied fields. It never touches introduction requests.
func (s *Service) SubmitVote(ctx context.Context, in models.VoteInput) (*models.Vote, error) {
	if err := validateVote(in); err != nil {
		return nil, err
	}

	vote, err := db.UpsertVote(ctx, s.db, in, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to submit vote: %w", err)
	}

	s.log.Info("vote submitted", "vote_id", vote.ID, "deal_id", vote.DealID, "lp_id", vote.LPID, "conviction", vote.ConvictionLevel)
	return vote, nil
}

// ListVotes returns the votes on a deal, newest first.
func (s *Service) ListVotes(ctx context.Context, dealID uuid.UUID) ([]models.Vote, error) {
	deal, err := db.GetDeal(ctx, s.db, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return nil, fmt.Errorf("deal %s: %w", dealID, ErrNotFound)
	}

	votes, err := db.FindVotes(ctx, s.db, &dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// DeleteVote removes a vote and its introduction request.
func (s *Service) DeleteVote(ctx context.Context, id uuid.UUID) error {
	if err := db.DeleteVote(ctx, s.db, id); err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	s.log.Info("vote deleted", "vote_id", id)
	return nil
}

func (s *Service) AddLP(ctx context.Context, lp *models.LP) error {
	if strings.TrimSpace(lp.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	lp.CreatedAt = s.clock()
	if err := db.CreateLP(ctx, s.db, lp); err != nil {
		return fmt.Errorf("failed to add lp: %w", err)
	}
	s.log.Info("lp added", "lp_id", lp.ID)
	return nil
}

func (s *Service) FindLPs(ctx context.Context, query string, limit int) ([]models.LP, error) {
	lps, err := db.FindLPs(ctx, s.db, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find lps: %w", err)
	}
	return lps, nil
}

// DeleteLP removes the LP along with its votes and their introduction
// requests, returning how many votes went with it.
func (s *Service) DeleteLP(ctx context.Context, id uuid.UUID) (int64, error) {
	removed, err := db.DeleteLP(ctx, s.db, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete lp: %w", err)
	}
	s.log.Info("lp deleted", "lp_id", id, "votes_removed", removed)
	return removed, nil
}
