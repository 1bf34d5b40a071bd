// ABOUTME: Introduction request derivation and status transitions
// ABOUTME: Lists qualifying votes live, and handles send, decline and manual creation
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
)

// ListIntroductionCandidates returns every vote that currently qualifies for
// an introduction plus every vote an operator already opened a request for.
// Qualification is evaluated against the vote as it is now, so editing a
// vote's signals can add it to or drop it from the list.
func (s *Service) ListIntroductionCandidates(ctx context.Context) ([]models.IntroductionCandidate, error) {
	all, err := db.FindVotesWithContext(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	candidates := make([]models.IntroductionCandidate, 0, len(all))
	for _, c := range all {
		if c.Vote.QualifiesForIntroduction() || c.Introduction != nil {
			candidates = append(candidates, c)
		}
	}

	models.SortCandidates(candidates)
	return candidates, nil
}

// SendIntroduction marks the vote's request sent and, when recipients are
// given and a sender is configured, queues the message to them.
func (s *Service) SendIntroduction(ctx context.Context, voteID uuid.UUID, message string, recipients []string) (*models.IntroductionRequest, error) {
	if voteID == uuid.Nil {
		return nil, fmt.Errorf("%w: vote_id is required", ErrInvalidInput)
	}

	now := s.clock()
	intro, err := db.MarkIntroductionSent(ctx, s.db, voteID, message, now)
	if err != nil {
		return nil, fmt.Errorf("failed to send introduction: %w", err)
	}
	s.log.Info("introduction sent", "vote_id", voteID, "recipients", recipients)

	recipients = cleanRecipients(recipients)
	if s.sender == nil || len(recipients) == 0 {
		return intro, nil
	}

	subject, err := s.introductionSubject(ctx, voteID)
	if err != nil {
		return nil, err
	}

	email := &models.OutboundEmail{
		VoteID:     voteID,
		Recipients: recipients,
		Subject:    subject,
		Body:       message,
		CreatedAt:  now,
	}
	if err := s.sender.Send(ctx, email); err != nil {
		s.log.Error("failed to queue introduction email", "vote_id", voteID, "error", err)
		return nil, fmt.Errorf("introduction marked sent but email was not queued: %w", err)
	}
	s.log.Debug("introduction email queued", "vote_id", voteID, "message_id", email.ID, "from", s.mailFrom)
	return intro, nil
}

func (s *Service) introductionSubject(ctx context.Context, voteID uuid.UUID) (string, error) {
	vote, err := db.GetVote(ctx, s.db, voteID)
	if err != nil {
		return "", fmt.Errorf("failed to get vote: %w", err)
	}
	if vote == nil {
		return "", fmt.Errorf("vote %s: %w", voteID, ErrNotFound)
	}
	deal, err := db.GetDeal(ctx, s.db, vote.DealID)
	if err != nil {
		return "", fmt.Errorf("failed to get deal: %w", err)
	}
	if deal == nil {
		return "Introduction", nil
	}
	return fmt.Sprintf("Introduction: %s", deal.CompanyName), nil
}

func cleanRecipients(recipients []string) []string {
	var out []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// DeclineIntroduction marks the vote's request declined.
func (s *Service) DeclineIntroduction(ctx context.Context, voteID uuid.UUID) (*models.IntroductionRequest, error) {
	if voteID == uuid.Nil {
		return nil, fmt.Errorf("%w: vote_id is required", ErrInvalidInput)
	}

	intro, err := db.MarkIntroductionDeclined(ctx, s.db, voteID, s.clock())
	if err != nil {
		return nil, fmt.Errorf("failed to decline introduction: %w", err)
	}
	s.log.Info("introduction declined", "vote_id", voteID)
	return intro, nil
}

// CreateManualIntroduction opens a request for an LP on a deal even when the
// LP's vote would not qualify, creating a placeholder vote if needed.
func (s *Service) CreateManualIntroduction(ctx context.Context, lpID, dealID uuid.UUID, message string) (*models.IntroductionRequest, *models.Vote, error) {
	if lpID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: lp_id is required", ErrInvalidInput)
	}
	if dealID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}

	intro, vote, err := db.CreateManualIntroduction(ctx, s.db, lpID, dealID, message, s.clock())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create introduction: %w", err)
	}

	s.log.Info("manual introduction created", "vote_id", vote.ID, "deal_id", dealID, "lp_id", lpID, "status", intro.Status)
	return intro, vote, nil
}
