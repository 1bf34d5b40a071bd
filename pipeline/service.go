// ABOUTME: Deal evaluation pipeline service shared by the MCP, HTTP and CLI surfaces
// ABOUTME: Validates input, injects the clock, and logs every state change before delegating to db
package pipeline

import (
	"database/sql"
	"time"

	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/logger"
	"github.com/harperreed/fundops/outbox"
)

// Error kinds surfaced to callers. Use errors.Is to tell them apart.
var (
	ErrNotFound     = db.ErrNotFound
	ErrInvalidInput = db.ErrInvalidInput
	ErrConflict     = db.ErrConflict
)

type Service struct {
	db       *sql.DB
	log      *logger.Logger
	now      func() time.Time
	sender   outbox.Sender
	mailFrom string
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSender sets where introduction emails go. Without one, sending an
// introduction only records its status.
func WithSender(sender outbox.Sender) Option {
	return func(s *Service) { s.sender = sender }
}

func WithMailFrom(from string) Option {
	return func(s *Service) { s.mailFrom = from }
}

func NewService(database *sql.DB, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		db:  database,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}
