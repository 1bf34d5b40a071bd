// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of the deal pipeline, LP votes and pending introductions
package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

type DashboardStats struct {
	Stages     []models.StageCount
	TotalDeals int
	TotalLPs   int

	// Introduction queue
	AwaitingIntroductions int // qualifying votes with no request, plus pending requests
	SentIntroductions     int
	DeclinedIntroductions int
}

func GenerateDashboardStats(ctx context.Context, svc *pipeline.Service) (*DashboardStats, error) {
	stats := &DashboardStats{}

	stages, err := svc.PipelineSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize pipeline: %w", err)
	}
	stats.Stages = stages
	for _, s := range stages {
		stats.TotalDeals += s.Count
	}

	lps, err := svc.FindLPs(ctx, "", 10000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lps: %w", err)
	}
	stats.TotalLPs = len(lps)

	candidates, err := svc.ListIntroductionCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch introductions: %w", err)
	}
	for _, c := range candidates {
		switch c.Status() {
		case "", models.IntroStatusPending:
			stats.AwaitingIntroductions++
		case models.IntroStatusSent:
			stats.SentIntroductions++
		case models.IntroStatusDeclined:
			stats.DeclinedIntroductions++
		}
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  FUNDOPS PIPELINE DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.Stages)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  💼 %d deals  🤝 %d LPs\n\n", stats.TotalDeals, stats.TotalLPs))

	out.WriteString("INTRODUCTIONS\n")
	out.WriteString(fmt.Sprintf("  %d awaiting  %d sent  %d declined\n",
		stats.AwaitingIntroductions, stats.SentIntroductions, stats.DeclinedIntroductions))

	return out.String()
}

func renderPipeline(out *strings.Builder, stages []models.StageCount) {
	maxCount := 0
	for _, s := range stages {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, s := range stages {
		if s.Count == 0 {
			continue
		}

		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-31s %s  %2d (net %+d)\n", s.Stage, bar, s.Count, s.NetScore))
	}
}
