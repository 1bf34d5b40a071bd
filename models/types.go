// ABOUTME: Data models for the deal evaluation pipeline
// ABOUTME: Defines Deal, Founder, LP, Vote, IntroductionRequest and their enum constants
package models

import (
	"time"

	"github.com/google/uuid"
)

type Deal struct {
	ID                      uuid.UUID  `json:"id"`
	CompanyName             string     `json:"company_name"`
	Description             string     `json:"description,omitempty"`
	Website                 string     `json:"website,omitempty"`
	Sector                  string     `json:"sector,omitempty"`
	RoundSize               int64      `json:"round_size,omitempty"` // in cents
	Valuation               int64      `json:"valuation,omitempty"`  // in cents
	CheckSize               int64      `json:"check_size,omitempty"` // in cents
	Currency                string     `json:"currency"`
	Source                  string     `json:"source,omitempty"`
	Stage                   string     `json:"stage"`
	SourcingMeetingBookedAt *time.Time `json:"sourcing_meeting_booked_at,omitempty"`
	PartnerReviewStartedAt  *time.Time `json:"partner_review_started_at,omitempty"`
	CloseDate               *time.Time `json:"close_date,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// DealUpdate carries a partial deal write. Nil fields are left untouched.
type DealUpdate struct {
	CompanyName             *string
	Description             *string
	Website                 *string
	Sector                  *string
	RoundSize               *int64
	Valuation               *int64
	CheckSize               *int64
	Currency                *string
	Source                  *string
	Stage                   *string
	SourcingMeetingBookedAt *time.Time
	PartnerReviewStartedAt  *time.Time
	CloseDate               *time.Time
}

// DealDetail is a deal plus the optional joins requested by the caller.
type DealDetail struct {
	Deal
	VoteSummary *VoteSummary `json:"vote_summary,omitempty"`
	Founders    []Founder    `json:"founders,omitempty"`
}

type Founder struct {
	ID        uuid.UUID `json:"id"`
	DealID    uuid.UUID `json:"deal_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LP is a limited partner of the fund.
type LP struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Firm      string    `json:"firm,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Vote struct {
	ID                     uuid.UUID `json:"id"`
	DealID                 uuid.UUID `json:"deal_id"`
	LPID                   uuid.UUID `json:"lp_id"`
	ConvictionLevel        int       `json:"conviction_level,omitempty"`
	StrongNo               bool      `json:"strong_no"`
	PilotCustomerInterest  bool      `json:"pilot_customer_interest"`
	PilotCustomerResponse  string    `json:"pilot_customer_response,omitempty"`
	WouldBuy               bool      `json:"would_buy"`
	BuyingInterestResponse string    `json:"buying_interest_response,omitempty"`
	Comment                string    `json:"comment,omitempty"`
	Feedback               string    `json:"feedback,omitempty"`
	ReviewStatus           string    `json:"review_status,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// VoteInput is a vote submission keyed on (DealID, LPID). Nil fields keep
// whatever value the stored vote already has.
type VoteInput struct {
	DealID                 uuid.UUID
	LPID                   uuid.UUID
	ConvictionLevel        *int
	StrongNo               *bool
	PilotCustomerInterest  *bool
	PilotCustomerResponse  *string
	WouldBuy               *bool
	BuyingInterestResponse *string
	Comment                *string
	Feedback               *string
	ReviewStatus           *string
}

// VoteSummary is computed from the votes of one deal on every read.
type VoteSummary struct {
	TotalVotes    int `json:"total_votes"`
	Conviction1   int `json:"conviction_1"`
	Conviction2   int `json:"conviction_2"`
	Conviction3   int `json:"conviction_3"`
	Conviction4   int `json:"conviction_4"`
	StrongNoCount int `json:"strong_no_count"`
	ToReviewCount int `json:"to_review_count"`
	NetScore      int `json:"net_score"`
}

type IntroductionRequest struct {
	ID         uuid.UUID  `json:"id"`
	VoteID     uuid.UUID  `json:"vote_id"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	DeclinedAt *time.Time `json:"declined_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IntroductionCandidate is a vote joined with the context an operator needs
// to decide on an introduction.
type IntroductionCandidate struct {
	Vote         Vote                 `json:"vote"`
	CompanyName  string               `json:"company_name"`
	DealStage    string               `json:"deal_stage"`
	LPName       string               `json:"lp_name"`
	LPEmail      string               `json:"lp_email,omitempty"`
	Introduction *IntroductionRequest `json:"introduction,omitempty"`
}

// Status returns the introduction status, or "" when no request exists yet.
func (c IntroductionCandidate) Status() string {
	if c.Introduction == nil {
		return ""
	}
	return c.Introduction.Status
}

type OutboundEmail struct {
	ID         string    `json:"id"`
	VoteID     uuid.UUID `json:"vote_id"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// StageCount is one row of the pipeline overview.
type StageCount struct {
	Stage    string `json:"stage"`
	Count    int    `json:"count"`
	NetScore int    `json:"net_score"`
}

// Conviction levels.
const (
	ConvictionNo                = 1
	ConvictionFollowPack        = 2
	ConvictionStrongYes         = 3
	ConvictionStrongYesIncrease = 4
)

// Pilot customer responses.
const (
	PilotHellYes                  = "hell_yes"
	PilotVeryInterested           = "very_interested"
	PilotInterestedWithConditions = "interested_with_conditions"
	PilotNotInterested            = "not_interested"
)

// Buying interest responses.
const (
	BuyingAbsolutely = "absolutely"
	BuyingVeryLikely = "very_likely"
	BuyingProbably   = "probably"
	BuyingUnlikely   = "unlikely"
)

// Review status constants.
const (
	ReviewStatusToReview = "to_review"
	ReviewStatusReviewed = "reviewed"
)

// Introduction status constants.
const (
	IntroStatusPending  = "pending"
	IntroStatusSent     = "sent"
	IntroStatusDeclined = "declined"
)

// PlaceholderVoteComment marks votes created only to anchor a manual introduction.
const PlaceholderVoteComment = "Created automatically for a manual introduction request"
