// ABOUTME: Vote and LP MCP tool handlers
// ABOUTME: Implements submit_vote, list_votes, delete_vote, add_lp, find_lps and delete_lp
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VoteHandlers struct {
	svc *pipeline.Service
}

func NewVoteHandlers(svc *pipeline.Service) *VoteHandlers {
	return &VoteHandlers{svc: svc}
}

type SubmitVoteInput struct {
	DealID                 string  `json:"deal_id" jsonschema:"Deal being voted on (required)"`
	LPID                   string  `json:"lp_id" jsonschema:"LP casting the vote (required)"`
	ConvictionLevel        *int    `json:"conviction_level,omitempty" jsonschema:"1 no, 2 follow the pack, 3 strong yes, 4 strong yes and want to increase allocation"`
	StrongNo               *bool   `json:"strong_no,omitempty" jsonschema:"Strong objection to the deal"`
	PilotCustomerInterest  *bool   `json:"pilot_customer_interest,omitempty" jsonschema:"Interested in being a pilot customer"`
	PilotCustomerResponse  *string `json:"pilot_customer_response,omitempty" jsonschema:"hell_yes, very_interested, interested_with_conditions or not_interested"`
	WouldBuy               *bool   `json:"would_buy,omitempty" jsonschema:"Would buy the product"`
	BuyingInterestResponse *string `json:"buying_interest_response,omitempty" jsonschema:"absolutely, very_likely, probably or unlikely"`
	Comment                *string `json:"comment,omitempty" jsonschema:"Free-text comment"`
	Feedback               *string `json:"feedback,omitempty" jsonschema:"Feedback for the founders"`
	ReviewStatus           *string `json:"review_status,omitempty" jsonschema:"to_review or reviewed"`
}

// SubmitVote creates or merges the LP's vote. Omitted fields keep their
// stored values.
func (h *VoteHandlers) SubmitVote(ctx context.Context, request *mcp.CallToolRequest, input SubmitVoteInput) (*mcp.CallToolResult, VoteOutput, error) {
	dealID, err := pipeline.ParseID("deal_id", input.DealID)
	if err != nil {
		return nil, VoteOutput{}, err
	}
	lpID, err := pipeline.ParseID("lp_id", input.LPID)
	if err != nil {
		return nil, VoteOutput{}, err
	}

	vote, err := h.svc.SubmitVote(ctx, models.VoteInput{
		DealID:                 dealID,
		LPID:                   lpID,
		ConvictionLevel:        input.ConvictionLevel,
		StrongNo:               input.StrongNo,
		PilotCustomerInterest:  input.PilotCustomerInterest,
		PilotCustomerResponse:  input.PilotCustomerResponse,
		WouldBuy:               input.WouldBuy,
		BuyingInterestResponse: input.BuyingInterestResponse,
		Comment:                input.Comment,
		Feedback:               input.Feedback,
		ReviewStatus:           input.ReviewStatus,
	})
	if err != nil {
		return nil, VoteOutput{}, err
	}

	return nil, voteToOutput(vote), nil
}

type ListVotesInput struct {
	DealID string `json:"deal_id" jsonschema:"Deal whose votes to list (required)"`
}

type ListVotesOutput struct {
	Votes   []VoteOutput        `json:"votes"`
	Summary *models.VoteSummary `json:"summary"`
}

func (h *VoteHandlers) ListVotes(ctx context.Context, request *mcp.CallToolRequest, input ListVotesInput) (*mcp.CallToolResult, ListVotesOutput, error) {
	dealID, err := pipeline.ParseID("deal_id", input.DealID)
	if err != nil {
		return nil, ListVotesOutput{}, err
	}

	votes, err := h.svc.ListVotes(ctx, dealID)
	if err != nil {
		return nil, ListVotesOutput{}, err
	}

	out := ListVotesOutput{
		Votes:   make([]VoteOutput, 0, len(votes)),
		Summary: models.Summarize(votes),
	}
	for i := range votes {
		out.Votes = append(out.Votes, voteToOutput(&votes[i]))
	}
	return nil, out, nil
}

func (h *VoteHandlers) DeleteVote(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := pipeline.ParseID("id", input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := h.svc.DeleteVote(ctx, id); err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type AddLPInput struct {
	Name  string `json:"name" jsonschema:"LP name (required)"`
	Email string `json:"email,omitempty" jsonschema:"Email address"`
	Firm  string `json:"firm,omitempty" jsonschema:"Firm or family office"`
	Notes string `json:"notes,omitempty" jsonschema:"Notes about the LP"`
}

func (h *VoteHandlers) AddLP(ctx context.Context, request *mcp.CallToolRequest, input AddLPInput) (*mcp.CallToolResult, LPOutput, error) {
	lp := &models.LP{
		Name:  input.Name,
		Email: input.Email,
		Firm:  input.Firm,
		Notes: input.Notes,
	}
	if err := h.svc.AddLP(ctx, lp); err != nil {
		return nil, LPOutput{}, err
	}

	return nil, lpToOutput(lp), nil
}

type FindLPsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search by name, email or firm"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 50)"`
}

type FindLPsOutput struct {
	LPs   []LPOutput `json:"lps"`
	Count int        `json:"count"`
}

func (h *VoteHandlers) FindLPs(ctx context.Context, request *mcp.CallToolRequest, input FindLPsInput) (*mcp.CallToolResult, FindLPsOutput, error) {
	lps, err := h.svc.FindLPs(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, FindLPsOutput{}, err
	}

	out := FindLPsOutput{LPs: make([]LPOutput, 0, len(lps))}
	for i := range lps {
		out.LPs = append(out.LPs, lpToOutput(&lps[i]))
	}
	out.Count = len(out.LPs)
	return nil, out, nil
}

// DeleteLP also removes the LP's votes and their introduction requests.
func (h *VoteHandlers) DeleteLP(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := pipeline.ParseID("id", input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	removed, err := h.svc.DeleteLP(ctx, id)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{
		ID:      input.ID,
		Deleted: true,
		Message: fmt.Sprintf("removed %d vote(s)", removed),
	}, nil
}
