// ABOUTME: Introduction MCP tool handlers
// ABOUTME: Lists candidates and handles send, decline and manual creation of introduction requests
package handlers

import (
	"context"

	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type IntroductionHandlers struct {
	svc *pipeline.Service
}

func NewIntroductionHandlers(svc *pipeline.Service) *IntroductionHandlers {
	return &IntroductionHandlers{svc: svc}
}

type ListIntroductionsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Only candidates with this request status: none, pending, sent or declined"`
}

type ListIntroductionsOutput struct {
	Candidates []CandidateOutput `json:"candidates"`
	Count      int               `json:"count"`
}

func (h *IntroductionHandlers) ListIntroductionCandidates(ctx context.Context, request *mcp.CallToolRequest, input ListIntroductionsInput) (*mcp.CallToolResult, ListIntroductionsOutput, error) {
	candidates, err := h.svc.ListIntroductionCandidates(ctx)
	if err != nil {
		return nil, ListIntroductionsOutput{}, err
	}

	out := ListIntroductionsOutput{Candidates: make([]CandidateOutput, 0, len(candidates))}
	for i := range candidates {
		c := candidateToOutput(&candidates[i])
		if !matchesStatus(c.Status, input.Status) {
			continue
		}
		out.Candidates = append(out.Candidates, c)
	}
	out.Count = len(out.Candidates)
	return nil, out, nil
}

func matchesStatus(status, filter string) bool {
	switch filter {
	case "":
		return true
	case "none":
		return status == ""
	default:
		return status == filter
	}
}

type SendIntroductionInput struct {
	VoteID     string   `json:"vote_id" jsonschema:"Vote the introduction is for (required)"`
	Message    string   `json:"message,omitempty" jsonschema:"Introduction message; replaces any earlier message"`
	Recipients []string `json:"recipients,omitempty" jsonschema:"Email addresses to queue the message to"`
}

func (h *IntroductionHandlers) SendIntroduction(ctx context.Context, request *mcp.CallToolRequest, input SendIntroductionInput) (*mcp.CallToolResult, IntroductionOutput, error) {
	voteID, err := pipeline.ParseID("vote_id", input.VoteID)
	if err != nil {
		return nil, IntroductionOutput{}, err
	}

	intro, err := h.svc.SendIntroduction(ctx, voteID, input.Message, input.Recipients)
	if err != nil {
		return nil, IntroductionOutput{}, err
	}

	return nil, introductionToOutput(intro), nil
}

type DeclineIntroductionInput struct {
	VoteID string `json:"vote_id" jsonschema:"Vote the introduction is for (required)"`
}

func (h *IntroductionHandlers) DeclineIntroduction(ctx context.Context, request *mcp.CallToolRequest, input DeclineIntroductionInput) (*mcp.CallToolResult, IntroductionOutput, error) {
	voteID, err := pipeline.ParseID("vote_id", input.VoteID)
	if err != nil {
		return nil, IntroductionOutput{}, err
	}

	intro, err := h.svc.DeclineIntroduction(ctx, voteID)
	if err != nil {
		return nil, IntroductionOutput{}, err
	}

	return nil, introductionToOutput(intro), nil
}

type ManualIntroductionInput struct {
	LPID    string `json:"lp_id" jsonschema:"LP to introduce (required)"`
	DealID  string `json:"deal_id" jsonschema:"Deal to introduce them to (required)"`
	Message string `json:"message,omitempty" jsonschema:"Introduction message"`
}

type ManualIntroductionOutput struct {
	Introduction IntroductionOutput `json:"introduction"`
	Vote         VoteOutput         `json:"vote"`
}

func (h *IntroductionHandlers) CreateManualIntroduction(ctx context.Context, request *mcp.CallToolRequest, input ManualIntroductionInput) (*mcp.CallToolResult, ManualIntroductionOutput, error) {
	lpID, err := pipeline.ParseID("lp_id", input.LPID)
	if err != nil {
		return nil, ManualIntroductionOutput{}, err
	}
	dealID, err := pipeline.ParseID("deal_id", input.DealID)
	if err != nil {
		return nil, ManualIntroductionOutput{}, err
	}

	intro, vote, err := h.svc.CreateManualIntroduction(ctx, lpID, dealID, input.Message)
	if err != nil {
		return nil, ManualIntroductionOutput{}, err
	}

	return nil, ManualIntroductionOutput{
		Introduction: introductionToOutput(intro),
		Vote:         voteToOutput(vote),
	}, nil
}
