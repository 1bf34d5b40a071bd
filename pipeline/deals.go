// ABOUTME: Deal operations including the stage transition controller
// ABOUTME: Create and update apply milestone stamping; reads optionally join the vote summary and founders
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
)

// CreateDeal inserts a deal, defaulting to the sourcing stage. Creating a
// deal directly in a milestone stage stamps that milestone.
func (s *Service) CreateDeal(ctx context.Context, in DealInput) (*models.Deal, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}
	if in.Stage == nil {
		stage := models.StageSourcing
		in.Stage = &stage
	}

	now := s.clock()
	update, dropped := in.toUpdate()
	s.warnDropped(uuid.Nil, dropped)

	deal := &models.Deal{Currency: "USD", CreatedAt: now}
	update.Apply(deal, now)

	if err := db.CreateDeal(ctx, s.db, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.log.Info("deal created", "deal_id", deal.ID, "company", deal.CompanyName, "stage", deal.Stage)
	return deal, nil
}

// UpdateDeal applies a partial update. Fields absent from in are preserved,
// the stage defaults to the stored one, and entering a milestone stage stamps
// its timestamp unless already set or supplied in the same request.
func (s *Service) UpdateDeal(ctx context.Context, id uuid.UUID, in DealInput) (*models.Deal, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	now := s.clock()
	update, dropped := in.toUpdate()
	s.warnDropped(id, dropped)

	var prevStage string
	deal, err := db.UpdateDeal(ctx, s.db, id, func(d *models.Deal) error {
		prevStage = d.Stage
		update.Apply(d, now)
		d.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	if prevStage != deal.Stage {
		s.log.Info("deal stage changed", "deal_id", id, "from", prevStage, "to", deal.Stage)
	} else {
		s.log.Debug("deal updated", "deal_id", id)
	}
	return deal, nil
}

func (s *Service) warnDropped(id uuid.UUID, fields []string) {
	if len(fields) == 0 {
		return
	}
	s.log.Warn("ignoring malformed timestamp input", "deal_id", id, "fields", strings.Join(fields, ","))
}

type GetDealOptions struct {
	IncludeVotes    bool
	IncludeFounders bool
}

// GetDeal loads a deal. With IncludeVotes the summary is recomputed from the
// current votes and is all zeros when there are none.
func (s *Service) GetDeal(ctx context.Context, id uuid.UUID, opts GetDealOptions) (*models.DealDetail, error) {
	deal, err := db.GetDeal(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return nil, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}

	detail := &models.DealDetail{Deal: *deal}

	if opts.IncludeVotes {
		votes, err := db.FindVotes(ctx, s.db, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to load votes: %w", err)
		}
		detail.VoteSummary = models.Summarize(votes)
	}

	if opts.IncludeFounders {
		founders, err := db.GetDealFounders(ctx, s.db, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load founders: %w", err)
		}
		detail.Founders = founders
	}

	return detail, nil
}

func (s *Service) FindDeals(ctx context.Context, stage string, limit int) ([]models.Deal, error) {
	if stage != "" && !models.IsValidStage(stage) {
		return nil, fmt.Errorf("%w: invalid stage: %s", ErrInvalidInput, stage)
	}
	deals, err := db.FindDeals(ctx, s.db, stage, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find deals: %w", err)
	}
	return deals, nil
}

// DeleteDeal removes a deal that has no votes.
func (s *Service) DeleteDeal(ctx context.Context, id uuid.UUID) error {
	if err := db.DeleteDeal(ctx, s.db, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	s.log.Info("deal deleted", "deal_id", id)
	return nil
}

// AddFounder attaches a founder to an existing deal.
func (s *Service) AddFounder(ctx context.Context, founder *models.Founder) error {
	if strings.TrimSpace(founder.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if founder.DealID == uuid.Nil {
		return fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}

	deal, err := db.GetDeal(ctx, s.db, founder.DealID)
	if err != nil {
		return fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return fmt.Errorf("deal %s: %w", founder.DealID, ErrNotFound)
	}

	founder.CreatedAt = s.clock()
	if err := db.CreateFounder(ctx, s.db, founder); err != nil {
		return fmt.Errorf("failed to add founder: %w", err)
	}
	s.log.Info("founder added", "deal_id", founder.DealID, "founder_id", founder.ID)
	return nil
}

// PipelineSummary counts deals per stage, in pipeline order, together with
// the summed net score of their votes. Stages with no deals are included.
func (s *Service) PipelineSummary(ctx context.Context) ([]models.StageCount, error) {
	deals, err := db.FindDeals(ctx, s.db, "", 100000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}
	votes, err := db.FindVotes(ctx, s.db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}

	votesByDeal := make(map[uuid.UUID][]models.Vote)
	for _, v := range votes {
		votesByDeal[v.DealID] = append(votesByDeal[v.DealID], v)
	}

	byStage := make(map[string]*models.StageCount, len(models.Stages))
	counts := make([]models.StageCount, len(models.Stages))
	for i, stage := range models.Stages {
		counts[i].Stage = stage
		byStage[stage] = &counts[i]
	}

	for _, d := range deals {
		c, ok := byStage[d.Stage]
		if !ok {
			continue
		}
		c.Count++
		c.NetScore += models.Summarize(votesByDeal[d.ID]).NetScore
	}

	return counts, nil
}
