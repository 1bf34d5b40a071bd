// ABOUTME: Deal pipeline graph generation
// ABOUTME: Renders one node per stage with deal counts and summed net score, in pipeline order
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

type GraphGenerator struct {
	svc *pipeline.Service
}

func NewGraphGenerator(svc *pipeline.Service) *GraphGenerator {
	return &GraphGenerator{svc: svc}
}

// GeneratePipelineGraph returns DOT source for the stage flow. Active stages
// are chained left to right; both lost stages hang off partner review.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context) (string, error) {
	counts, err := g.svc.PipelineSummary(ctx)
	if err != nil {
		return "", err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() {
		if err := gv.Close(); err != nil {
			fmt.Printf("Error closing graphviz: %v\n", err)
		}
	}()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() {
		if err := graph.Close(); err != nil {
			fmt.Printf("Error closing graph: %v\n", err)
		}
	}()

	graph.SetLabel("Deal Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	nodes := make(map[string]*cgraph.Node, len(counts))
	for _, c := range counts {
		node, err := graph.CreateNodeByName(c.Stage)
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d deal(s), net %+d", c.Stage, c.Count, c.NetScore))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(stageColor(c))
		nodes[c.Stage] = node
	}

	var prev *cgraph.Node
	for _, stage := range models.Stages {
		if models.IsTerminalStage(stage) && stage != models.StageSignedAndWired {
			edge, err := graph.CreateEdgeByName("lost_"+stage, nodes[models.StagePartnerReview], nodes[stage])
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("dashed")
			continue
		}
		if prev != nil {
			if _, err := graph.CreateEdgeByName("next_"+stage, prev, nodes[stage]); err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
		}
		prev = nodes[stage]
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

func stageColor(c models.StageCount) string {
	switch {
	case c.Count == 0:
		return "white"
	case c.Stage == models.StageSignedAndWired:
		return "palegreen"
	case models.IsTerminalStage(c.Stage):
		return "lightgray"
	case c.NetScore < 0:
		return "mistyrose"
	default:
		return "lightblue"
	}
}
