// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the generate_pipeline_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
	"github.com/harperreed/fundops/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	svc *pipeline.Service
}

func NewVizHandlers(svc *pipeline.Service) *VizHandlers {
	return &VizHandlers{svc: svc}
}

type GenerateGraphInput struct{}

type GenerateGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GeneratePipelineGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	dot, err := viz.NewGraphGenerator(h.svc).GeneratePipelineGraph(ctx)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{
		DOTSource: dot,
		NodeCount: len(models.Stages),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
