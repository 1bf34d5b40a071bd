// ABOUTME: Visualization CLI commands
// ABOUTME: Writes the pipeline graph and prints the terminal dashboard
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/fundops/pipeline"
	"github.com/harperreed/fundops/viz"
)

// VizGraphPipelineCommand generates the deal pipeline graph.
func VizGraphPipelineCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("viz graph pipeline", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dot, err := viz.NewGraphGenerator(svc).GeneratePipelineGraph(context.Background())
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	fmt.Fprintln(stdout, dot)
	return nil
}

func VizDashboardCommand(svc *pipeline.Service, args []string) error {
	stats, err := viz.GenerateDashboardStats(context.Background(), svc)
	if err != nil {
		return fmt.Errorf("failed to generate dashboard stats: %w", err)
	}

	fmt.Fprint(stdout, viz.RenderDashboard(stats))
	return nil
}
