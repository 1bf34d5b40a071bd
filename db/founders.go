// ABOUTME: Founder directory database operations
// ABOUTME: Stores the founders attached to each deal
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

func CreateFounder(ctx context.Context, db *sql.DB, founder *models.Founder) error {
	founder.ID = uuid.New()
	if founder.CreatedAt.IsZero() {
		founder.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO founders (id, deal_id, name, email, linkedin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, founder.ID.String(), founder.DealID.String(), founder.Name, founder.Email, founder.LinkedIn, founder.CreatedAt)

	return err
}

func GetDealFounders(ctx context.Context, db *sql.DB, dealID uuid.UUID) ([]models.Founder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, deal_id, name, email, linkedin, created_at
		FROM founders
		WHERE deal_id = ?
		ORDER BY created_at ASC
	`, dealID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var founders []models.Founder
	for rows.Next() {
		var f models.Founder
		if err := rows.Scan(&f.ID, &f.DealID, &f.Name, &f.Email, &f.LinkedIn, &f.CreatedAt); err != nil {
			return nil, err
		}
		founders = append(founders, f)
	}

	return founders, rows.Err()
}
