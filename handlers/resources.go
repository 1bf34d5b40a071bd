// ABOUTME: MCP resource handlers for exposing pipeline data
// ABOUTME: Provides read-only access to deals, the stage overview and the introduction queue via fund:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "fund://"

type ResourceHandlers struct {
	svc *pipeline.Service
}

func NewResourceHandlers(svc *pipeline.Service) *ResourceHandlers {
	return &ResourceHandlers{svc: svc}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")

	switch parts[0] {
	case "deals":
		if len(parts) == 1 || parts[1] == "" {
			return h.readAllDeals(ctx, uri)
		}
		return h.readDeal(ctx, uri, parts[1])

	case "pipeline":
		return h.readPipeline(ctx, uri)

	case "introductions":
		return h.readIntroductions(ctx, uri)

	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readAllDeals(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	deals, err := h.svc.FindDeals(ctx, "", 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}

	out := make([]DealOutput, 0, len(deals))
	for i := range deals {
		out = append(out, dealToOutput(&deals[i]))
	}
	return jsonResource(uri, out)
}

func (h *ResourceHandlers) readDeal(ctx context.Context, uri, idStr string) (*mcp.ReadResourceResult, error) {
	id, err := pipeline.ParseID("deal id", idStr)
	if err != nil {
		return nil, err
	}

	detail, err := h.svc.GetDeal(ctx, id, pipeline.GetDealOptions{IncludeVotes: true, IncludeFounders: true})
	if err != nil {
		return nil, err
	}

	return jsonResource(uri, dealDetailToOutput(detail))
}

func (h *ResourceHandlers) readPipeline(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	counts, err := h.svc.PipelineSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize pipeline: %w", err)
	}
	return jsonResource(uri, counts)
}

func (h *ResourceHandlers) readIntroductions(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	candidates, err := h.svc.ListIntroductionCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch introductions: %w", err)
	}

	out := make([]CandidateOutput, 0, len(candidates))
	for i := range candidates {
		out = append(out, candidateToOutput(&candidates[i]))
	}
	return jsonResource(uri, out)
}
