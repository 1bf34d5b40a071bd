// ABOUTME: Limited partner directory database operations
// ABOUTME: Handles LP CRUD and the cascading cleanup of an LP's votes on deletion
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

func CreateLP(ctx context.Context, db *sql.DB, lp *models.LP) error {
	lp.ID = uuid.New()
	if lp.CreatedAt.IsZero() {
		lp.CreatedAt = time.Now().UTC()
	}
	lp.UpdatedAt = lp.CreatedAt

	_, err := db.ExecContext(ctx, `
		INSERT INTO lps (id, name, email, firm, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, lp.ID.String(), lp.Name, lp.Email, lp.Firm, lp.Notes, lp.CreatedAt, lp.UpdatedAt)

	return err
}

// GetLP returns nil, nil when the LP does not exist.
func GetLP(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.LP, error) {
	return getLP(ctx, db, id)
}

func getLP(ctx context.Context, q querier, id uuid.UUID) (*models.LP, error) {
	lp := &models.LP{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, email, firm, notes, created_at, updated_at
		FROM lps WHERE id = ?
	`, id.String()).Scan(&lp.ID, &lp.Name, &lp.Email, &lp.Firm, &lp.Notes, &lp.CreatedAt, &lp.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lp, nil
}

func FindLPs(ctx context.Context, db *sql.DB, query string, limit int) ([]models.LP, error) {
	if limit <= 0 {
		limit = 50
	}

	searchPattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, email, firm, notes, created_at, updated_at
		FROM lps
		WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(firm) LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`, searchPattern, searchPattern, searchPattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lps []models.LP
	for rows.Next() {
		var lp models.LP
		if err := rows.Scan(&lp.ID, &lp.Name, &lp.Email, &lp.Firm, &lp.Notes, &lp.CreatedAt, &lp.UpdatedAt); err != nil {
			return nil, err
		}
		lps = append(lps, lp)
	}

	return lps, rows.Err()
}

// DeleteLP removes the LP after deleting its votes and the introduction
// requests anchored to them, so no vote is left pointing at a missing LP.
// It returns the number of votes removed.
func DeleteLP(ctx context.Context, db *sql.DB, id uuid.UUID) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	lp, err := getLP(ctx, tx, id)
	if err != nil {
		return 0, err
	}
	if lp == nil {
		return 0, fmt.Errorf("lp %s: %w", id, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM introduction_requests
		WHERE vote_id IN (SELECT id FROM votes WHERE lp_id = ?)
	`, id.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete introduction requests: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE lp_id = ?`, id.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	removed, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lps WHERE id = ?`, id.String()); err != nil {
		return 0, err
	}

	return removed, tx.Commit()
}
