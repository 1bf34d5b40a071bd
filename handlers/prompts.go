// ABOUTME: MCP prompt handlers for reusable deal evaluation workflows
// ABOUTME: Provides deal-review, pipeline-analysis and introduction-brief prompt templates
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	svc *pipeline.Service
}

func NewPromptHandlers(svc *pipeline.Service) *PromptHandlers {
	return &PromptHandlers{svc: svc}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "deal-review":
		return h.getDealReviewPrompt(ctx, arguments)
	case "pipeline-analysis":
		return h.getPipelineAnalysisPrompt(ctx)
	case "introduction-brief":
		return h.getIntroductionBriefPrompt(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (h *PromptHandlers) getDealReviewPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	dealID, err := pipeline.ParseID("deal_id", args["deal_id"])
	if err != nil {
		return nil, err
	}

	detail, err := h.svc.GetDeal(ctx, dealID, pipeline.GetDealOptions{IncludeVotes: true, IncludeFounders: true})
	if err != nil {
		return nil, err
	}
	votes, err := h.svc.ListVotes(ctx, dealID)
	if err != nil {
		return nil, err
	}

	var promptText strings.Builder
	promptText.WriteString("Please review this deal for the partnership:\n\n")
	promptText.WriteString(fmt.Sprintf("Company: %s\n", detail.CompanyName))
	promptText.WriteString(fmt.Sprintf("Stage: %s\n", detail.Stage))
	if detail.Sector != "" {
		promptText.WriteString(fmt.Sprintf("Sector: %s\n", detail.Sector))
	}
	if detail.Description != "" {
		promptText.WriteString(fmt.Sprintf("Description: %s\n", detail.Description))
	}
	if detail.RoundSize > 0 {
		promptText.WriteString(fmt.Sprintf("Round: %d %s\n", detail.RoundSize/100, detail.Currency))
	}
	for _, f := range detail.Founders {
		promptText.WriteString(fmt.Sprintf("Founder: %s\n", f.Name))
	}

	s := detail.VoteSummary
	promptText.WriteString(fmt.Sprintf("\nLP votes: %d (net score %+d)\n", s.TotalVotes, s.NetScore))
	promptText.WriteString(fmt.Sprintf("  Conviction 1/2/3/4: %d/%d/%d/%d, strong no: %d\n",
		s.Conviction1, s.Conviction2, s.Conviction3, s.Conviction4, s.StrongNoCount))
	for _, v := range votes {
		if v.Comment != "" && v.Comment != models.PlaceholderVoteComment {
			promptText.WriteString(fmt.Sprintf("  - \"%s\"\n", v.Comment))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. The strongest arguments for and against investing")
	promptText.WriteString("\n2. Open questions for the next founder conversation")
	promptText.WriteString("\n3. A recommendation on whether to advance the deal")

	return userPrompt(fmt.Sprintf("Review for deal: %s", detail.CompanyName), promptText.String()), nil
}

func (h *PromptHandlers) getPipelineAnalysisPrompt(ctx context.Context) (*mcp.GetPromptResult, error) {
	counts, err := h.svc.PipelineSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize pipeline: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Please analyze the current deal pipeline:\n\n")
	promptText.WriteString("Pipeline by Stage:\n")
	for _, c := range counts {
		promptText.WriteString(fmt.Sprintf("  - %s: %d deals, net score %+d\n", c.Stage, c.Count, c.NetScore))
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Analysis of pipeline health and distribution")
	promptText.WriteString("\n2. Deals whose LP sentiment suggests they should move or be passed on")

	return userPrompt("Deal pipeline analysis", promptText.String()), nil
}

func (h *PromptHandlers) getIntroductionBriefPrompt(ctx context.Context) (*mcp.GetPromptResult, error) {
	candidates, err := h.svc.ListIntroductionCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch introductions: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Draft introduction emails for these LPs:\n\n")
	drafted := 0
	for _, c := range candidates {
		if status := c.Status(); status != "" && status != models.IntroStatusPending {
			continue
		}
		drafted++
		promptText.WriteString(fmt.Sprintf("  - %s → %s", c.LPName, c.CompanyName))
		if c.Vote.PilotCustomerResponse != "" {
			promptText.WriteString(fmt.Sprintf(" (pilot: %s)", c.Vote.PilotCustomerResponse))
		}
		if c.Vote.BuyingInterestResponse != "" {
			promptText.WriteString(fmt.Sprintf(" (buying: %s)", c.Vote.BuyingInterestResponse))
		}
		promptText.WriteString("\n")
	}
	if drafted == 0 {
		promptText.WriteString("  (no introductions are waiting)\n")
	}

	promptText.WriteString("\nKeep each email short and explain why the LP is a good fit for the company.")

	return userPrompt("Introduction drafts", promptText.String()), nil
}
