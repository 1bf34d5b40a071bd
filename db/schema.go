// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation for deals, LPs, votes and introductions
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	sector TEXT NOT NULL DEFAULT '',
	round_size INTEGER NOT NULL DEFAULT 0,
	valuation INTEGER NOT NULL DEFAULT 0,
	check_size INTEGER NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'USD',
	source TEXT NOT NULL DEFAULT '',
	stage TEXT NOT NULL,
	sourcing_meeting_booked_at DATETIME,
	partner_review_started_at DATETIME,
	close_date DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);
CREATE INDEX IF NOT EXISTS idx_deals_company_name ON deals(company_name);

CREATE TABLE IF NOT EXISTS founders (
	id TEXT PRIMARY KEY,
	deal_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	linkedin TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (deal_id) REFERENCES deals(id)
);

CREATE INDEX IF NOT EXISTS idx_founders_deal_id ON founders(deal_id);

CREATE TABLE IF NOT EXISTS lps (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	firm TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lps_email ON lps(email);

CREATE TABLE IF NOT EXISTS votes (
	id TEXT PRIMARY KEY,
	deal_id TEXT NOT NULL,
	lp_id TEXT NOT NULL,
	conviction_level INTEGER NOT NULL DEFAULT 0 CHECK(conviction_level BETWEEN 0 AND 4),
	strong_no INTEGER NOT NULL DEFAULT 0,
	pilot_customer_interest INTEGER NOT NULL DEFAULT 0,
	pilot_customer_response TEXT NOT NULL DEFAULT '',
	would_buy INTEGER NOT NULL DEFAULT 0,
	buying_interest_response TEXT NOT NULL DEFAULT '',
	comment TEXT NOT NULL DEFAULT '',
	feedback TEXT NOT NULL DEFAULT '',
	review_status TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(deal_id, lp_id),
	FOREIGN KEY (deal_id) REFERENCES deals(id),
	FOREIGN KEY (lp_id) REFERENCES lps(id)
);

CREATE INDEX IF NOT EXISTS idx_votes_deal_id ON votes(deal_id);
CREATE INDEX IF NOT EXISTS idx_votes_lp_id ON votes(lp_id);

CREATE TABLE IF NOT EXISTS introduction_requests (
	id TEXT PRIMARY KEY,
	vote_id TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'sent', 'declined')),
	message TEXT NOT NULL DEFAULT '',
	sent_at DATETIME,
	declined_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (vote_id) REFERENCES votes(id)
);

CREATE INDEX IF NOT EXISTS idx_introduction_requests_status ON introduction_requests(status);

CREATE TABLE IF NOT EXISTS outbound_emails (
	id TEXT PRIMARY KEY,
	vote_id TEXT NOT NULL,
	recipients TEXT NOT NULL,
	subject TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_outbound_emails_vote_id ON outbound_emails(vote_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
