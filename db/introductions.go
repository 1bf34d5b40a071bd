// ABOUTME: Introduction request database operations
// ABOUTME: Upserts one request per vote for send, decline and manual creation, and joins votes for listing
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

const introColumns = `id, vote_id, status, message, sent_at, declined_at, created_at, updated_at`

// MarkIntroductionSent moves the vote's request to sent, stamping sent_at and
// storing message. The request is created when absent. Repeating the call
// re-stamps and overwrites the message.
func MarkIntroductionSent(ctx context.Context, db *sql.DB, voteID uuid.UUID, message string, now time.Time) (*models.IntroductionRequest, error) {
	return settleIntroduction(ctx, db, voteID, `
		INSERT INTO introduction_requests (id, vote_id, status, message, sent_at, created_at, updated_at)
		VALUES (@id, @vote_id, 'sent', @message, @now, @now, @now)
		ON CONFLICT(vote_id) DO UPDATE SET
			status = 'sent',
			message = @message,
			sent_at = @now,
			updated_at = @now
	`, sql.Named("message", message), sql.Named("now", now))
}

// MarkIntroductionDeclined moves the vote's request to declined, stamping
// declined_at. The request is created when absent.
func MarkIntroductionDeclined(ctx context.Context, db *sql.DB, voteID uuid.UUID, now time.Time) (*models.IntroductionRequest, error) {
	return settleIntroduction(ctx, db, voteID, `
		INSERT INTO introduction_requests (id, vote_id, status, declined_at, created_at, updated_at)
		VALUES (@id, @vote_id, 'declined', @now, @now, @now)
		ON CONFLICT(vote_id) DO UPDATE SET
			status = 'declined',
			declined_at = @now,
			updated_at = @now
	`, sql.Named("now", now))
}

func settleIntroduction(ctx context.Context, db *sql.DB, voteID uuid.UUID, query string, args ...any) (*models.IntroductionRequest, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	vote, err := getVote(ctx, tx, voteID)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, fmt.Errorf("vote %s: %w", voteID, ErrNotFound)
	}

	args = append(args, sql.Named("id", uuid.New().String()), sql.Named("vote_id", voteID.String()))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert introduction request: %w", err)
	}

	intro, err := getIntroductionByVote(ctx, tx, voteID)
	if err != nil {
		return nil, err
	}

	return intro, tx.Commit()
}

// CreateManualIntroduction anchors an operator-created request to the LP's
// vote on the deal, inserting a placeholder vote first when the LP never
// voted. New requests start pending; an existing request keeps its status
// and only takes the new message.
func CreateManualIntroduction(ctx context.Context, db *sql.DB, lpID, dealID uuid.UUID, message string, now time.Time) (*models.IntroductionRequest, *models.Vote, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := requireDealAndLP(ctx, tx, dealID, lpID); err != nil {
		return nil, nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, deal_id, lp_id, conviction_level, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(deal_id, lp_id) DO NOTHING
	`, uuid.New().String(), dealID.String(), lpID.String(), models.ConvictionStrongYes, models.PlaceholderVoteComment, now, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create placeholder vote: %w", err)
	}

	vote, err := getVoteByPair(ctx, tx, dealID, lpID)
	if err != nil {
		return nil, nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO introduction_requests (id, vote_id, status, message, created_at, updated_at)
		VALUES (@id, @vote_id, 'pending', @message, @now, @now)
		ON CONFLICT(vote_id) DO UPDATE SET
			message = @message,
			updated_at = @now
	`,
		sql.Named("id", uuid.New().String()),
		sql.Named("vote_id", vote.ID.String()),
		sql.Named("message", message),
		sql.Named("now", now),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upsert introduction request: %w", err)
	}

	intro, err := getIntroductionByVote(ctx, tx, vote.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return intro, vote, nil
}

// GetIntroductionByVote returns nil, nil when the vote has no request.
func GetIntroductionByVote(ctx context.Context, db *sql.DB, voteID uuid.UUID) (*models.IntroductionRequest, error) {
	return getIntroductionByVote(ctx, db, voteID)
}

func getIntroductionByVote(ctx context.Context, q querier, voteID uuid.UUID) (*models.IntroductionRequest, error) {
	var ir models.IntroductionRequest
	var sentAt, declinedAt sql.NullTime

	err := q.QueryRowContext(ctx, `SELECT `+introColumns+` FROM introduction_requests WHERE vote_id = ?`, voteID.String()).Scan(
		&ir.ID,
		&ir.VoteID,
		&ir.Status,
		&ir.Message,
		&sentAt,
		&declinedAt,
		&ir.CreatedAt,
		&ir.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ir.SentAt = timePtr(sentAt)
	ir.DeclinedAt = timePtr(declinedAt)
	return &ir, nil
}

// FindVotesWithContext joins every vote with its deal, its LP and its
// introduction request (if any). Qualification is left to the caller so it is
// always evaluated against the live vote fields.
func FindVotesWithContext(ctx context.Context, db *sql.DB) ([]models.IntroductionCandidate, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			v.id, v.deal_id, v.lp_id, v.conviction_level, v.strong_no, v.pilot_customer_interest, v.pilot_customer_response,
			v.would_buy, v.buying_interest_response, v.comment, v.feedback, v.review_status, v.created_at, v.updated_at,
			d.company_name, d.stage, l.name, l.email,
			ir.id, ir.status, ir.message, ir.sent_at, ir.declined_at, ir.created_at, ir.updated_at
		FROM votes v
		JOIN deals d ON d.id = v.deal_id
		JOIN lps l ON l.id = v.lp_id
		LEFT JOIN introduction_requests ir ON ir.vote_id = v.id
		ORDER BY v.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []models.IntroductionCandidate
	for rows.Next() {
		var c models.IntroductionCandidate
		var irID, irStatus, irMessage sql.NullString
		var irSentAt, irDeclinedAt, irCreatedAt, irUpdatedAt sql.NullTime

		v := &c.Vote
		err := rows.Scan(
			&v.ID, &v.DealID, &v.LPID, &v.ConvictionLevel, &v.StrongNo, &v.PilotCustomerInterest, &v.PilotCustomerResponse,
			&v.WouldBuy, &v.BuyingInterestResponse, &v.Comment, &v.Feedback, &v.ReviewStatus, &v.CreatedAt, &v.UpdatedAt,
			&c.CompanyName, &c.DealStage, &c.LPName, &c.LPEmail,
			&irID, &irStatus, &irMessage, &irSentAt, &irDeclinedAt, &irCreatedAt, &irUpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if irID.Valid {
			id, err := uuid.Parse(irID.String)
			if err != nil {
				return nil, fmt.Errorf("invalid introduction request id %q: %w", irID.String, err)
			}
			c.Introduction = &models.IntroductionRequest{
				ID:         id,
				VoteID:     v.ID,
				Status:     irStatus.String,
				Message:    irMessage.String,
				SentAt:     timePtr(irSentAt),
				DeclinedAt: timePtr(irDeclinedAt),
				CreatedAt:  irCreatedAt.Time,
				UpdatedAt:  irUpdatedAt.Time,
			}
		}

		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
