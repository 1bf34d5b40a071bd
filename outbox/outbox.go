// ABOUTME: Outbound email outbox for introduction messages
// ABOUTME: Records each introduction email with a ULID so a delivery worker can pick it up
package outbox

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
	"github.com/oklog/ulid/v2"
)

// Sender hands an introduction email to whatever delivers it.
type Sender interface {
	Send(ctx context.Context, email *models.OutboundEmail) error
}

// Outbox is a Sender that stores messages in the outbound_emails table.
type Outbox struct {
	db *sql.DB

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

func New(db *sql.DB) *Outbox {
	return &Outbox{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (o *Outbox) Send(ctx context.Context, email *models.OutboundEmail) error {
	if len(email.Recipients) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now().UTC()
	}

	o.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(email.CreatedAt), o.entropy)
	o.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}
	email.ID = id.String()

	_, err = o.db.ExecContext(ctx, `
		INSERT INTO outbound_emails (id, vote_id, recipients, subject, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, email.ID, email.VoteID.String(), strings.Join(email.Recipients, ","), email.Subject, email.Body, email.CreatedAt)

	return err
}

// List returns recorded messages for a vote in the order they were queued.
func (o *Outbox) List(ctx context.Context, voteID uuid.UUID) ([]models.OutboundEmail, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT id, vote_id, recipients, subject, body, created_at
		FROM outbound_emails
		WHERE vote_id = ?
		ORDER BY id ASC
	`, voteID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []models.OutboundEmail
	for rows.Next() {
		var e models.OutboundEmail
		var recipients string
		if err := rows.Scan(&e.ID, &e.VoteID, &recipients, &e.Subject, &e.Body, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Recipients = strings.Split(recipients, ",")
		emails = append(emails, e)
	}

	return emails, rows.Err()
}
