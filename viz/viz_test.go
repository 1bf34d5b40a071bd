// ABOUTME: Tests for pipeline graph and dashboard rendering
// ABOUTME: Uses an in-memory database seeded through the pipeline service
package viz

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *pipeline.Service {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return pipeline.NewService(database, nil)
}

func seed(t *testing.T, svc *pipeline.Service) {
	t.Helper()
	ctx := context.Background()
	name, stage := "Acme", models.StagePartnerReview
	deal, err := svc.CreateDeal(ctx, pipeline.DealInput{CompanyName: &name, Stage: &stage})
	require.NoError(t, err)

	lp := &models.LP{Name: "Alice"}
	require.NoError(t, svc.AddLP(ctx, lp))

	level := 4
	_, err = svc.SubmitVote(ctx, models.VoteInput{DealID: deal.ID, LPID: lp.ID, ConvictionLevel: &level})
	require.NoError(t, err)
}

func TestGeneratePipelineGraph(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	dot, err := NewGraphGenerator(svc).GeneratePipelineGraph(context.Background())
	require.NoError(t, err)

	assert.Contains(t, dot, "digraph")
	for _, stage := range models.Stages {
		assert.Contains(t, dot, stage)
	}
	assert.Contains(t, dot, "1 deal(s), net +1")
}

func TestDashboard(t *testing.T) {
	svc := setupService(t)
	seed(t, svc)

	stats, err := GenerateDashboardStats(context.Background(), svc)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDeals)
	assert.Equal(t, 1, stats.TotalLPs)
	assert.Equal(t, 1, stats.AwaitingIntroductions)

	out := RenderDashboard(stats)
	assert.Contains(t, out, "PIPELINE OVERVIEW")
	assert.Contains(t, out, models.StagePartnerReview)
	assert.False(t, strings.Contains(out, models.StageOffer), "empty stages are skipped")
}
