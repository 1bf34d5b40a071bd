// ABOUTME: Raw request shapes and parsing helpers for the pipeline service
// ABOUTME: Timestamps arrive as strings and malformed ones are dropped instead of failing the request
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fundops/models"
)

// DealInput is a deal write as it arrives from a transport. Nil fields are
// not part of the request and keep their stored value.
type DealInput struct {
	CompanyName             *string `json:"company_name"`
	Description             *string `json:"description"`
	Website                 *string `json:"website"`
	Sector                  *string `json:"sector"`
	RoundSize               *int64  `json:"round_size"`
	Valuation               *int64  `json:"valuation"`
	CheckSize               *int64  `json:"check_size"`
	Currency                *string `json:"currency"`
	Source                  *string `json:"source"`
	Stage                   *string `json:"stage"`
	SourcingMeetingBookedAt *string `json:"sourcing_meeting_booked_at"`
	PartnerReviewStartedAt  *string `json:"partner_review_started_at"`
	CloseDate               *string `json:"close_date"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and a few common date layouts.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseID parses a required uuid field, naming the field in the error.
func ParseID(field, raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, field, err)
	}
	return id, nil
}

// toUpdate converts the request, dropping timestamps that do not parse so the
// stored value survives. Dropped field names are returned for logging.
func (in DealInput) toUpdate() (models.DealUpdate, []string) {
	u := models.DealUpdate{
		CompanyName: in.CompanyName,
		Description: in.Description,
		Website:     in.Website,
		Sector:      in.Sector,
		RoundSize:   in.RoundSize,
		Valuation:   in.Valuation,
		CheckSize:   in.CheckSize,
		Currency:    in.Currency,
		Source:      in.Source,
		Stage:       in.Stage,
	}

	var dropped []string
	parse := func(field string, raw *string) *time.Time {
		if raw == nil || strings.TrimSpace(*raw) == "" {
			return nil
		}
		t, err := ParseTimestamp(*raw)
		if err != nil {
			dropped = append(dropped, field)
			return nil
		}
		return &t
	}

	u.SourcingMeetingBookedAt = parse("sourcing_meeting_booked_at", in.SourcingMeetingBookedAt)
	u.PartnerReviewStartedAt = parse("partner_review_started_at", in.PartnerReviewStartedAt)
	u.CloseDate = parse("close_date", in.CloseDate)
	return u, dropped
}

func (in DealInput) validate(creating bool) error {
	if creating && (in.CompanyName == nil || strings.TrimSpace(*in.CompanyName) == "") {
		return fmt.Errorf("%w: company_name is required", ErrInvalidInput)
	}
	if !creating && in.CompanyName != nil && strings.TrimSpace(*in.CompanyName) == "" {
		return fmt.Errorf("%w: company_name cannot be empty", ErrInvalidInput)
	}
	if in.Stage != nil && !models.IsValidStage(*in.Stage) {
		return fmt.Errorf("%w: invalid stage: %s (valid: %s)", ErrInvalidInput, *in.Stage, strings.Join(models.Stages, ", "))
	}
	return nil
}

var validPilotResponses = []string{
	models.PilotHellYes, models.PilotVeryInterested, models.PilotInterestedWithConditions, models.PilotNotInterested,
}

var validBuyingResponses = []string{
	models.BuyingAbsolutely, models.BuyingVeryLikely, models.BuyingProbably, models.BuyingUnlikely,
}

func validateVote(in models.VoteInput) error {
	if in.DealID == uuid.Nil {
		return fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}
	if in.LPID == uuid.Nil {
		return fmt.Errorf("%w: lp_id is required", ErrInvalidInput)
	}
	if in.ConvictionLevel != nil && !models.IsValidConviction(*in.ConvictionLevel) {
		return fmt.Errorf("%w: conviction_level must be between 1 and 4, got %d", ErrInvalidInput, *in.ConvictionLevel)
	}
	if in.PilotCustomerResponse != nil && !oneOfOrEmpty(*in.PilotCustomerResponse, validPilotResponses) {
		return fmt.Errorf("%w: invalid pilot_customer_response: %s", ErrInvalidInput, *in.PilotCustomerResponse)
	}
	if in.BuyingInterestResponse != nil && !oneOfOrEmpty(*in.BuyingInterestResponse, validBuyingResponses) {
		return fmt.Errorf("%w: invalid buying_interest_response: %s", ErrInvalidInput, *in.BuyingInterestResponse)
	}
	if in.ReviewStatus != nil && !oneOfOrEmpty(*in.ReviewStatus, []string{models.ReviewStatusToReview, models.ReviewStatusReviewed}) {
		return fmt.Errorf("%w: invalid review_status: %s", ErrInvalidInput, *in.ReviewStatus)
	}
	return nil
}

func oneOfOrEmpty(v string, allowed []string) bool {
	if v == "" {
		return true
	}
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
