// ABOUTME: Tests for the outbound email outbox
// ABOUTME: Verifies ULID assignment, ordering, and recipient validation
package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxSendAndList(t *testing.T) {
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	ctx := context.Background()
	box := New(database)
	voteID := uuid.New()
	at := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	first := &models.OutboundEmail{VoteID: voteID, Recipients: []string{"lp@example.com", "founder@acme.com"}, Subject: "Intro", Body: "Hello", CreatedAt: at}
	second := &models.OutboundEmail{VoteID: voteID, Recipients: []string{"lp@example.com"}, Subject: "Intro again", Body: "Hi", CreatedAt: at}
	require.NoError(t, box.Send(ctx, first))
	require.NoError(t, box.Send(ctx, second))

	parsed, err := ulid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())

	emails, err := box.List(ctx, voteID)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, first.ID, emails[0].ID)
	assert.Equal(t, []string{"lp@example.com", "founder@acme.com"}, emails[0].Recipients)
	assert.Equal(t, "Intro again", emails[1].Subject)
}

func TestOutboxRequiresRecipients(t *testing.T) {
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	err = New(database).Send(context.Background(), &models.OutboundEmail{VoteID: uuid.New(), Subject: "x"})
	assert.Error(t, err)
}
