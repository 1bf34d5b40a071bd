// ABOUTME: Tests for the CLI commands and MCP server wiring
// ABOUTME: Captures command output in a buffer and talks to the MCP server over in-memory transports
package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/outbox"
	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) (*pipeline.Service, *bytes.Buffer) {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	return pipeline.NewService(database, nil, pipeline.WithSender(outbox.New(database))), &buf
}

func seedDealAndLP(t *testing.T, svc *pipeline.Service) (*models.Deal, *models.LP) {
	t.Helper()
	ctx := context.Background()
	name := "Acme"
	deal, err := svc.CreateDeal(ctx, pipeline.DealInput{CompanyName: &name})
	require.NoError(t, err)
	lp := &models.LP{Name: "Alice", Email: "alice@lp.example"}
	require.NoError(t, svc.AddLP(ctx, lp))
	return deal, lp
}

func TestAddDealCommand(t *testing.T) {
	svc, out := setupCLI(t)

	require.NoError(t, AddDealCommand(svc, []string{"--company", "Acme", "--stage", "partner_review", "--round-size", "300000000"}))
	assert.Contains(t, out.String(), "✓ Deal created: Acme")
	assert.Contains(t, out.String(), "partner_review")

	deals, err := svc.FindDeals(context.Background(), models.StagePartnerReview, 0)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.NotNil(t, deals[0].PartnerReviewStartedAt)
}

func TestAddDealCommandRequiresCompany(t *testing.T) {
	svc, _ := setupCLI(t)
	assert.Error(t, AddDealCommand(svc, []string{"--sector", "fintech"}))
}

func TestUpdateDealCommandOnlyChangesPassedFlags(t *testing.T) {
	svc, _ := setupCLI(t)
	ctx := context.Background()
	name, sector := "Acme", "fintech"
	deal, err := svc.CreateDeal(ctx, pipeline.DealInput{CompanyName: &name, Sector: &sector})
	require.NoError(t, err)

	require.NoError(t, UpdateDealCommand(svc, []string{"--stage", "offer", deal.ID.String()}))

	detail, err := svc.GetDeal(ctx, deal.ID, pipeline.GetDealOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.StageOffer, detail.Stage)
	assert.Equal(t, "fintech", detail.Sector)
}

func TestVoteAndIntrosCommands(t *testing.T) {
	svc, out := setupCLI(t)
	deal, lp := seedDealAndLP(t, svc)

	require.NoError(t, VoteCommand(svc, []string{"--deal", deal.ID.String(), "--lp", lp.ID.String(), "--conviction", "4"}))
	assert.Contains(t, out.String(), "Qualifies for an introduction")

	out.Reset()
	require.NoError(t, IntrosCommand(svc, []string{"--status", "none"}))
	assert.Contains(t, out.String(), "Acme")
	assert.Contains(t, out.String(), "Total: 1 introduction(s)")

	out.Reset()
	require.NoError(t, IntrosCommand(svc, []string{"--status", "sent"}))
	assert.Contains(t, out.String(), "No introductions found")
}

func TestManualIntroCommand(t *testing.T) {
	svc, out := setupCLI(t)
	deal, lp := seedDealAndLP(t, svc)

	require.NoError(t, ManualIntroCommand(svc, []string{"--lp", lp.ID.String(), "--deal", deal.ID.String(), "--message", "worth a call"}))
	assert.Contains(t, out.String(), "Introduction request pending")

	votes, err := svc.ListVotes(context.Background(), deal.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, models.PlaceholderVoteComment, votes[0].Comment)
}

func TestPipelineCommand(t *testing.T) {
	svc, out := setupCLI(t)
	seedDealAndLP(t, svc)

	require.NoError(t, PipelineCommand(svc, nil))
	assert.Contains(t, out.String(), models.StageSignedAndWired)
	assert.Contains(t, out.String(), "Total: 1 deal(s)")
}

func TestVizDashboardCommand(t *testing.T) {
	svc, out := setupCLI(t)
	seedDealAndLP(t, svc)

	require.NoError(t, VizDashboardCommand(svc, nil))
	assert.Contains(t, out.String(), "FUNDOPS PIPELINE DASHBOARD")
	assert.Contains(t, out.String(), "1 deals")
}

func TestMCPServerRegistersEverything(t *testing.T) {
	svc, _ := setupCLI(t)
	deal, _ := seedDealAndLP(t, svc)
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := NewMCPServer(svc, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"create_deal", "update_deal", "get_deal", "find_deals", "delete_deal", "add_founder", "pipeline_summary",
		"add_lp", "find_lps", "delete_lp", "submit_vote", "list_votes", "delete_vote",
		"list_introduction_candidates", "send_introduction", "decline_introduction", "create_manual_introduction",
		"generate_pipeline_graph",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}

	prompts, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, prompts.Prompts, 3)

	resources, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, resources.Resources, 3)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_deal",
		Arguments: map[string]any{"id": deal.ID.String(), "include_votes": true},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	read, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: "fund://deals/" + deal.ID.String()})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	assert.Contains(t, read.Contents[0].Text, "Acme")
}
