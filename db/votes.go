// ABOUTME: Vote database operations
// ABOUTME: Upserts one vote per (deal, LP) with field-level merge and lists votes for aggregation
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

const voteColumns = `id, deal_id, lp_id, conviction_level, strong_no, pilot_customer_interest, pilot_customer_response,
	would_buy, buying_interest_response, comment, feedback, review_status, created_at, updated_at`

// upsertVoteSQL inserts a fresh vote or merges into the existing (deal, LP)
// row. A NULL parameter means "not supplied": the insert falls back to the
// column default and the update keeps the stored value.
const upsertVoteSQL = `
	INSERT INTO votes (` + voteColumns + `)
	VALUES (
		@id, @deal_id, @lp_id,
		COALESCE(@conviction_level, 0),
		COALESCE(@strong_no, 0),
		COALESCE(@pilot_customer_interest, 0),
		COALESCE(@pilot_customer_response, ''),
		COALESCE(@would_buy, 0),
		COALESCE(@buying_interest_response, ''),
		COALESCE(@comment, ''),
		COALESCE(@feedback, ''),
		COALESCE(@review_status, ''),
		@now, @now
	)
	ON CONFLICT(deal_id, lp_id) DO UPDATE SET
		conviction_level = COALESCE(@conviction_level, votes.conviction_level),
		strong_no = COALESCE(@strong_no, votes.strong_no),
		pilot_customer_interest = COALESCE(@pilot_customer_interest, votes.pilot_customer_interest),
		pilot_customer_response = COALESCE(@pilot_customer_response, votes.pilot_customer_response),
		would_buy = COALESCE(@would_buy, votes.would_buy),
		buying_interest_response = COALESCE(@buying_interest_response, votes.buying_interest_response),
		comment = COALESCE(@comment, votes.comment),
		feedback = COALESCE(@feedback, votes.feedback),
		review_status = COALESCE(@review_status, votes.review_status),
		updated_at = @now
`

// UpsertVote stores a vote submission keyed on (deal, LP). Both the deal and
// the LP must exist; otherwise ErrNotFound is returned and nothing is written.
func UpsertVote(ctx context.Context, db *sql.DB, in models.VoteInput, now time.Time) (*models.Vote, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := requireDealAndLP(ctx, tx, in.DealID, in.LPID); err != nil {
		return nil, err
	}

	if err := upsertVote(ctx, tx, in, now); err != nil {
		return nil, fmt.Errorf("failed to upsert vote: %w", err)
	}

	vote, err := getVoteByPair(ctx, tx, in.DealID, in.LPID)
	if err != nil {
		return nil, err
	}

	return vote, tx.Commit()
}

func upsertVote(ctx context.Context, q querier, in models.VoteInput, now time.Time) error {
	_, err := q.ExecContext(ctx, upsertVoteSQL,
		sql.Named("id", uuid.New().String()),
		sql.Named("deal_id", in.DealID.String()),
		sql.Named("lp_id", in.LPID.String()),
		sql.Named("conviction_level", optional(in.ConvictionLevel)),
		sql.Named("strong_no", optional(in.StrongNo)),
		sql.Named("pilot_customer_interest", optional(in.PilotCustomerInterest)),
		sql.Named("pilot_customer_response", optional(in.PilotCustomerResponse)),
		sql.Named("would_buy", optional(in.WouldBuy)),
		sql.Named("buying_interest_response", optional(in.BuyingInterestResponse)),
		sql.Named("comment", optional(in.Comment)),
		sql.Named("feedback", optional(in.Feedback)),
		sql.Named("review_status", optional(in.ReviewStatus)),
		sql.Named("now", now),
	)
	return err
}

func requireDealAndLP(ctx context.Context, q querier, dealID, lpID uuid.UUID) error {
	deal, err := getDeal(ctx, q, dealID)
	if err != nil {
		return err
	}
	if deal == nil {
		return fmt.Errorf("deal %s: %w", dealID, ErrNotFound)
	}

	lp, err := getLP(ctx, q, lpID)
	if err != nil {
		return err
	}
	if lp == nil {
		return fmt.Errorf("lp %s: %w", lpID, ErrNotFound)
	}
	return nil
}

// GetVote returns nil, nil when the vote does not exist.
func GetVote(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Vote, error) {
	return getVote(ctx, db, id)
}

func getVote(ctx context.Context, q querier, id uuid.UUID) (*models.Vote, error) {
	row := q.QueryRowContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE id = ?`, id.String())
	vote, err := scanVote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return vote, err
}

// GetVoteByPair returns nil, nil when the LP has not voted on the deal.
func GetVoteByPair(ctx context.Context, db *sql.DB, dealID, lpID uuid.UUID) (*models.Vote, error) {
	return getVoteByPair(ctx, db, dealID, lpID)
}

func getVoteByPair(ctx context.Context, q querier, dealID, lpID uuid.UUID) (*models.Vote, error) {
	row := q.QueryRowContext(ctx, `SELECT `+voteColumns+` FROM votes WHERE deal_id = ? AND lp_id = ?`,
		dealID.String(), lpID.String())
	vote, err := scanVote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return vote, err
}

// FindVotes lists votes newest first, for one deal or for every deal when
// dealID is nil.
func FindVotes(ctx context.Context, db *sql.DB, dealID *uuid.UUID) ([]models.Vote, error) {
	var rows *sql.Rows
	var err error

	if dealID != nil {
		rows, err = db.QueryContext(ctx, `
			SELECT `+voteColumns+`
			FROM votes
			WHERE deal_id = ?
			ORDER BY created_at DESC
		`, dealID.String())
	} else {
		rows, err = db.QueryContext(ctx, `
			SELECT `+voteColumns+`
			FROM votes
			ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}

	return votes, rows.Err()
}

// DeleteVote removes a vote together with its introduction request.
func DeleteVote(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM introduction_requests WHERE vote_id = ?`, id.String()); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("vote %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

func scanVote(s rowScanner) (*models.Vote, error) {
	var v models.Vote
	err := s.Scan(
		&v.ID,
		&v.DealID,
		&v.LPID,
		&v.ConvictionLevel,
		&v.StrongNo,
		&v.PilotCustomerInterest,
		&v.PilotCustomerResponse,
		&v.WouldBuy,
		&v.BuyingInterestResponse,
		&v.Comment,
		&v.Feedback,
		&v.ReviewStatus,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
