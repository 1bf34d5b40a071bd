// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, update_deal, get_deal, find_deals, delete_deal, add_founder and pipeline_summary
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	svc *pipeline.Service
}

func NewDealHandlers(svc *pipeline.Service) *DealHandlers {
	return &DealHandlers{svc: svc}
}

type CreateDealInput struct {
	CompanyName             string `json:"company_name" jsonschema:"Company name (required)"`
	Description             string `json:"description,omitempty" jsonschema:"What the company does"`
	Website                 string `json:"website,omitempty" jsonschema:"Company website"`
	Sector                  string `json:"sector,omitempty" jsonschema:"Sector, e.g. fintech or climate"`
	RoundSize               int64  `json:"round_size,omitempty" jsonschema:"Total round size in cents"`
	Valuation               int64  `json:"valuation,omitempty" jsonschema:"Valuation in cents"`
	CheckSize               int64  `json:"check_size,omitempty" jsonschema:"Our check size in cents"`
	Currency                string `json:"currency,omitempty" jsonschema:"Currency code (default USD)"`
	Source                  string `json:"source,omitempty" jsonschema:"Where the deal came from"`
	Stage                   string `json:"stage,omitempty" jsonschema:"Pipeline stage: sourcing, sourcing_reached_out, sourcing_meeting_booked, sourcing_meeting_done_deciding, partner_review, offer, signed, signed_and_wired, closed_lost_passed, closed_lost_rejected (default sourcing)"`
	SourcingMeetingBookedAt string `json:"sourcing_meeting_booked_at,omitempty" jsonschema:"Override for the meeting-booked milestone (ISO 8601)"`
	PartnerReviewStartedAt  string `json:"partner_review_started_at,omitempty" jsonschema:"Override for the partner-review milestone (ISO 8601)"`
	CloseDate               string `json:"close_date,omitempty" jsonschema:"Override for the close date (ISO 8601)"`
}

type UpdateDealInput struct {
	ID                      string  `json:"id" jsonschema:"Deal ID (required)"`
	CompanyName             *string `json:"company_name,omitempty" jsonschema:"New company name"`
	Description             *string `json:"description,omitempty" jsonschema:"New description"`
	Website                 *string `json:"website,omitempty" jsonschema:"New website"`
	Sector                  *string `json:"sector,omitempty" jsonschema:"New sector"`
	RoundSize               *int64  `json:"round_size,omitempty" jsonschema:"New round size in cents"`
	Valuation               *int64  `json:"valuation,omitempty" jsonschema:"New valuation in cents"`
	CheckSize               *int64  `json:"check_size,omitempty" jsonschema:"New check size in cents"`
	Currency                *string `json:"currency,omitempty" jsonschema:"New currency code"`
	Source                  *string `json:"source,omitempty" jsonschema:"New source"`
	Stage                   *string `json:"stage,omitempty" jsonschema:"New pipeline stage; entering a milestone stage stamps its timestamp once"`
	SourcingMeetingBookedAt *string `json:"sourcing_meeting_booked_at,omitempty" jsonschema:"Explicit meeting-booked timestamp (ISO 8601)"`
	PartnerReviewStartedAt  *string `json:"partner_review_started_at,omitempty" jsonschema:"Explicit partner-review timestamp (ISO 8601)"`
	CloseDate               *string `json:"close_date,omitempty" jsonschema:"Explicit close date (ISO 8601)"`
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonZero(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func (h *DealHandlers) CreateDeal(ctx context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	deal, err := h.svc.CreateDeal(ctx, pipeline.DealInput{
		CompanyName:             &input.CompanyName,
		Description:             nonEmpty(input.Description),
		Website:                 nonEmpty(input.Website),
		Sector:                  nonEmpty(input.Sector),
		RoundSize:               nonZero(input.RoundSize),
		Valuation:               nonZero(input.Valuation),
		CheckSize:               nonZero(input.CheckSize),
		Currency:                nonEmpty(input.Currency),
		Source:                  nonEmpty(input.Source),
		Stage:                   nonEmpty(input.Stage),
		SourcingMeetingBookedAt: nonEmpty(input.SourcingMeetingBookedAt),
		PartnerReviewStartedAt:  nonEmpty(input.PartnerReviewStartedAt),
		CloseDate:               nonEmpty(input.CloseDate),
	})
	if err != nil {
		return nil, DealOutput{}, err
	}

	return nil, dealToOutput(deal), nil
}

func (h *DealHandlers) UpdateDeal(ctx context.Context, request *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := pipeline.ParseID("id", input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	deal, err := h.svc.UpdateDeal(ctx, id, pipeline.DealInput{
		CompanyName:             input.CompanyName,
		Description:             input.Description,
		Website:                 input.Website,
		Sector:                  input.Sector,
		RoundSize:               input.RoundSize,
		Valuation:               input.Valuation,
		CheckSize:               input.CheckSize,
		Currency:                input.Currency,
		Source:                  input.Source,
		Stage:                   input.Stage,
		SourcingMeetingBookedAt: input.SourcingMeetingBookedAt,
		PartnerReviewStartedAt:  input.PartnerReviewStartedAt,
		CloseDate:               input.CloseDate,
	})
	if err != nil {
		return nil, DealOutput{}, err
	}

	return nil, dealToOutput(deal), nil
}

type GetDealInput struct {
	ID              string `json:"id" jsonschema:"Deal ID (required)"`
	IncludeVotes    bool   `json:"include_votes,omitempty" jsonschema:"Attach the live vote summary"`
	IncludeFounders bool   `json:"include_founders,omitempty" jsonschema:"Attach the founders"`
}

func (h *DealHandlers) GetDeal(ctx context.Context, request *mcp.CallToolRequest, input GetDealInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := pipeline.ParseID("id", input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	detail, err := h.svc.GetDeal(ctx, id, pipeline.GetDealOptions{
		IncludeVotes:    input.IncludeVotes,
		IncludeFounders: input.IncludeFounders,
	})
	if err != nil {
		return nil, DealOutput{}, err
	}

	return nil, dealDetailToOutput(detail), nil
}

type FindDealsInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"Only deals in this stage"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 50)"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
	Count int          `json:"count"`
}

func (h *DealHandlers) FindDeals(ctx context.Context, request *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	deals, err := h.svc.FindDeals(ctx, input.Stage, input.Limit)
	if err != nil {
		return nil, FindDealsOutput{}, err
	}

	out := FindDealsOutput{Deals: make([]DealOutput, 0, len(deals))}
	for i := range deals {
		out.Deals = append(out.Deals, dealToOutput(&deals[i]))
	}
	out.Count = len(out.Deals)
	return nil, out, nil
}

type DeleteInput struct {
	ID string `json:"id" jsonschema:"ID of the record to delete (required)"`
}

type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

func (h *DealHandlers) DeleteDeal(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := pipeline.ParseID("id", input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := h.svc.DeleteDeal(ctx, id); err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type AddFounderInput struct {
	DealID   string `json:"deal_id" jsonschema:"Deal the founder belongs to (required)"`
	Name     string `json:"name" jsonschema:"Founder name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Founder email"`
	LinkedIn string `json:"linkedin,omitempty" jsonschema:"LinkedIn profile URL"`
}

func (h *DealHandlers) AddFounder(ctx context.Context, request *mcp.CallToolRequest, input AddFounderInput) (*mcp.CallToolResult, FounderOutput, error) {
	dealID, err := pipeline.ParseID("deal_id", input.DealID)
	if err != nil {
		return nil, FounderOutput{}, err
	}

	founder := &models.Founder{
		DealID:   dealID,
		Name:     input.Name,
		Email:    input.Email,
		LinkedIn: input.LinkedIn,
	}
	if err := h.svc.AddFounder(ctx, founder); err != nil {
		return nil, FounderOutput{}, err
	}

	return nil, founderToOutput(founder), nil
}

type PipelineSummaryInput struct{}

type PipelineSummaryOutput struct {
	Stages     []models.StageCount `json:"stages"`
	TotalDeals int                 `json:"total_deals"`
}

func (h *DealHandlers) PipelineSummary(ctx context.Context, request *mcp.CallToolRequest, input PipelineSummaryInput) (*mcp.CallToolResult, PipelineSummaryOutput, error) {
	counts, err := h.svc.PipelineSummary(ctx)
	if err != nil {
		return nil, PipelineSummaryOutput{}, fmt.Errorf("failed to summarize pipeline: %w", err)
	}

	out := PipelineSummaryOutput{Stages: counts}
	for _, c := range counts {
		out.TotalDeals += c.Count
	}
	return nil, out, nil
}
