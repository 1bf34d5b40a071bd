// ABOUTME: Output shapes shared by the MCP tool handlers
// ABOUTME: Converts models into string-keyed JSON structs with RFC 3339 timestamps
package handlers

import (
	"time"

	"github.com/harperreed/fundops/models"
)

type DealOutput struct {
	ID                      string              `json:"id"`
	CompanyName             string              `json:"company_name"`
	Description             string              `json:"description,omitempty"`
	Website                 string              `json:"website,omitempty"`
	Sector                  string              `json:"sector,omitempty"`
	RoundSize               int64               `json:"round_size,omitempty"`
	Valuation               int64               `json:"valuation,omitempty"`
	CheckSize               int64               `json:"check_size,omitempty"`
	Currency                string              `json:"currency"`
	Source                  string              `json:"source,omitempty"`
	Stage                   string              `json:"stage"`
	SourcingMeetingBookedAt *string             `json:"sourcing_meeting_booked_at,omitempty"`
	PartnerReviewStartedAt  *string             `json:"partner_review_started_at,omitempty"`
	CloseDate               *string             `json:"close_date,omitempty"`
	CreatedAt               string              `json:"created_at"`
	UpdatedAt               string              `json:"updated_at"`
	VoteSummary             *models.VoteSummary `json:"vote_summary,omitempty"`
	Founders                []FounderOutput     `json:"founders,omitempty"`
}

type FounderOutput struct {
	ID       string `json:"id"`
	DealID   string `json:"deal_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type LPOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Firm      string `json:"firm,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

type VoteOutput struct {
	ID                     string `json:"id"`
	DealID                 string `json:"deal_id"`
	LPID                   string `json:"lp_id"`
	ConvictionLevel        int    `json:"conviction_level,omitempty"`
	StrongNo               bool   `json:"strong_no"`
	PilotCustomerInterest  bool   `json:"pilot_customer_interest"`
	PilotCustomerResponse  string `json:"pilot_customer_response,omitempty"`
	WouldBuy               bool   `json:"would_buy"`
	BuyingInterestResponse string `json:"buying_interest_response,omitempty"`
	Comment                string `json:"comment,omitempty"`
	Feedback               string `json:"feedback,omitempty"`
	ReviewStatus           string `json:"review_status,omitempty"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

type IntroductionOutput struct {
	ID         string  `json:"id"`
	VoteID     string  `json:"vote_id"`
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
	SentAt     *string `json:"sent_at,omitempty"`
	DeclinedAt *string `json:"declined_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type CandidateOutput struct {
	Vote         VoteOutput          `json:"vote"`
	CompanyName  string              `json:"company_name"`
	DealStage    string              `json:"deal_stage"`
	LPName       string              `json:"lp_name"`
	LPEmail      string              `json:"lp_email,omitempty"`
	Status       string              `json:"status"`
	Introduction *IntroductionOutput `json:"introduction,omitempty"`
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func dealToOutput(deal *models.Deal) DealOutput {
	return DealOutput{
		ID:                      deal.ID.String(),
		CompanyName:             deal.CompanyName,
		Description:             deal.Description,
		Website:                 deal.Website,
		Sector:                  deal.Sector,
		RoundSize:               deal.RoundSize,
		Valuation:               deal.Valuation,
		CheckSize:               deal.CheckSize,
		Currency:                deal.Currency,
		Source:                  deal.Source,
		Stage:                   deal.Stage,
		SourcingMeetingBookedAt: formatTimePtr(deal.SourcingMeetingBookedAt),
		PartnerReviewStartedAt:  formatTimePtr(deal.PartnerReviewStartedAt),
		CloseDate:               formatTimePtr(deal.CloseDate),
		CreatedAt:               formatTime(deal.CreatedAt),
		UpdatedAt:               formatTime(deal.UpdatedAt),
	}
}

func dealDetailToOutput(detail *models.DealDetail) DealOutput {
	out := dealToOutput(&detail.Deal)
	out.VoteSummary = detail.VoteSummary
	for i := range detail.Founders {
		out.Founders = append(out.Founders, founderToOutput(&detail.Founders[i]))
	}
	return out
}

func founderToOutput(f *models.Founder) FounderOutput {
	return FounderOutput{
		ID:       f.ID.String(),
		DealID:   f.DealID.String(),
		Name:     f.Name,
		Email:    f.Email,
		LinkedIn: f.LinkedIn,
	}
}

func lpToOutput(lp *models.LP) LPOutput {
	return LPOutput{
		ID:        lp.ID.String(),
		Name:      lp.Name,
		Email:     lp.Email,
		Firm:      lp.Firm,
		Notes:     lp.Notes,
		CreatedAt: formatTime(lp.CreatedAt),
	}
}

func voteToOutput(v *models.Vote) VoteOutput {
	return VoteOutput{
		ID:                     v.ID.String(),
		DealID:                 v.DealID.String(),
		LPID:                   v.LPID.String(),
		ConvictionLevel:        v.ConvictionLevel,
		StrongNo:               v.StrongNo,
		PilotCustomerInterest:  v.PilotCustomerInterest,
		PilotCustomerResponse:  v.PilotCustomerResponse,
		WouldBuy:               v.WouldBuy,
		BuyingInterestResponse: v.BuyingInterestResponse,
		Comment:                v.Comment,
		Feedback:               v.Feedback,
		ReviewStatus:           v.ReviewStatus,
		CreatedAt:              formatTime(v.CreatedAt),
		UpdatedAt:              formatTime(v.UpdatedAt),
	}
}

func introductionToOutput(ir *models.IntroductionRequest) IntroductionOutput {
	return IntroductionOutput{
		ID:         ir.ID.String(),
		VoteID:     ir.VoteID.String(),
		Status:     ir.Status,
		Message:    ir.Message,
		SentAt:     formatTimePtr(ir.SentAt),
		DeclinedAt: formatTimePtr(ir.DeclinedAt),
		CreatedAt:  formatTime(ir.CreatedAt),
		UpdatedAt:  formatTime(ir.UpdatedAt),
	}
}

func candidateToOutput(c *models.IntroductionCandidate) CandidateOutput {
	out := CandidateOutput{
		Vote:        voteToOutput(&c.Vote),
		CompanyName: c.CompanyName,
		DealStage:   c.DealStage,
		LPName:      c.LPName,
		LPEmail:     c.LPEmail,
		Status:      c.Status(),
	}
	if c.Introduction != nil {
		ir := introductionToOutput(c.Introduction)
		out.Introduction = &ir
	}
	return out
}
