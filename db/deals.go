// ABOUTME: Deal database operations
// ABOUTME: Handles deal creation, transactional read-modify-write updates, listing and guarded deletion
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const dealColumns = `id, company_name, description, website, sector, round_size, valuation, check_size, currency, source, stage,
	sourcing_meeting_booked_at, partner_review_started_at, close_date, created_at, updated_at`

func CreateDeal(ctx context.Context, db *sql.DB, deal *models.Deal) error {
	deal.ID = uuid.New()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now().UTC()
	}
	deal.UpdatedAt = deal.CreatedAt

	if deal.Currency == "" {
		deal.Currency = "USD"
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO deals (`+dealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID.String(), deal.CompanyName, deal.Description, deal.Website, deal.Sector,
		deal.RoundSize, deal.Valuation, deal.CheckSize, deal.Currency, deal.Source, deal.Stage,
		nullTime(deal.SourcingMeetingBookedAt), nullTime(deal.PartnerReviewStartedAt), nullTime(deal.CloseDate),
		deal.CreatedAt, deal.UpdatedAt)

	return err
}

// GetDeal returns nil, nil when the deal does not exist.
func GetDeal(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Deal, error) {
	return getDeal(ctx, db, id)
}

func getDeal(ctx context.Context, q querier, id uuid.UUID) (*models.Deal, error) {
	row := q.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = ?`, id.String())
	deal, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// UpdateDeal loads the deal, lets mutate change it and writes every column
// back, all inside one transaction. A missing deal returns ErrNotFound
// without writing anything.
func UpdateDeal(ctx context.Context, db *sql.DB, id uuid.UUID, mutate func(*models.Deal) error) (*models.Deal, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	deal, err := getDeal(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}
	if deal == nil {
		return nil, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}

	if err := mutate(deal); err != nil {
		return nil, err
	}
	if deal.UpdatedAt.IsZero() {
		deal.UpdatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE deals
		SET company_name = ?, description = ?, website = ?, sector = ?, round_size = ?, valuation = ?, check_size = ?,
			currency = ?, source = ?, stage = ?, sourcing_meeting_booked_at = ?, partner_review_started_at = ?,
			close_date = ?, updated_at = ?
		WHERE id = ?
	`, deal.CompanyName, deal.Description, deal.Website, deal.Sector, deal.RoundSize, deal.Valuation, deal.CheckSize,
		deal.Currency, deal.Source, deal.Stage, nullTime(deal.SourcingMeetingBookedAt), nullTime(deal.PartnerReviewStartedAt),
		nullTime(deal.CloseDate), deal.UpdatedAt, id.String())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return deal, nil
}

func FindDeals(ctx context.Context, db *sql.DB, stage string, limit int) ([]models.Deal, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if stage != "" {
		rows, err = db.QueryContext(ctx, `
			SELECT `+dealColumns+`
			FROM deals
			WHERE stage = ?
			ORDER BY updated_at DESC
			LIMIT ?
		`, stage, limit)
	} else {
		rows, err = db.QueryContext(ctx, `
			SELECT `+dealColumns+`
			FROM deals
			ORDER BY updated_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *d)
	}

	return deals, rows.Err()
}

// DeleteDeal removes a deal and its founders. Deals that still have votes are
// refused with ErrConflict; votes are never cascaded from a deal.
func DeleteDeal(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deal, err := getDeal(ctx, tx, id)
	if err != nil {
		return err
	}
	if deal == nil {
		return fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}

	var votes int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE deal_id = ?`, id.String()).Scan(&votes); err != nil {
		return err
	}
	if votes > 0 {
		return fmt.Errorf("deal %s has %d vote(s): %w", id, votes, ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM founders WHERE deal_id = ?`, id.String()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id.String()); err != nil {
		return err
	}

	return tx.Commit()
}

func scanDeal(s rowScanner) (*models.Deal, error) {
	var d models.Deal
	var meetingBooked, partnerReview, closeDate sql.NullTime

	err := s.Scan(
		&d.ID,
		&d.CompanyName,
		&d.Description,
		&d.Website,
		&d.Sector,
		&d.RoundSize,
		&d.Valuation,
		&d.CheckSize,
		&d.Currency,
		&d.Source,
		&d.Stage,
		&meetingBooked,
		&partnerReview,
		&closeDate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.SourcingMeetingBookedAt = timePtr(meetingBooked)
	d.PartnerReviewStartedAt = timePtr(partnerReview)
	d.CloseDate = timePtr(closeDate)
	return &d, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
