// ABOUTME: MCP server subcommand
// ABOUTME: Registers deal, vote and introduction tools plus fund:// resources and prompts, then serves on stdio
package cli

import (
	"context"

	"github.com/harperreed/fundops/handlers"
	"github.com/harperreed/fundops/logger"
	"github.com/harperreed/fundops/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds the MCP server with every tool, resource and prompt registered.
func NewMCPServer(svc *pipeline.Service, version string) *mcp.Server {
	dealHandlers := handlers.NewDealHandlers(svc)
	voteHandlers := handlers.NewVoteHandlers(svc)
	introHandlers := handlers.NewIntroductionHandlers(svc)
	vizHandlers := handlers.NewVizHandlers(svc)
	resourceHandlers := handlers.NewResourceHandlers(svc)
	promptHandlers := handlers.NewPromptHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fundops",
		Version: version,
	}, nil)

	// Deals
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a deal in the pipeline; milestone timestamps are stamped from the stage",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update a deal; only the fields given are changed and stage changes stamp milestones once",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_deal",
		Description: "Get a deal, optionally with its live vote summary and founders",
	}, dealHandlers.GetDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_deals",
		Description: "List deals, most recently updated first, optionally filtered by stage",
	}, dealHandlers.FindDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal that has no votes",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_founder",
		Description: "Add a founder to a deal",
	}, dealHandlers.AddFounder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_summary",
		Description: "Count deals and summed net score per stage",
	}, dealHandlers.PipelineSummary)

	// LPs and votes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_lp",
		Description: "Add a limited partner",
	}, voteHandlers.AddLP)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_lps",
		Description: "Search LPs by name, email or firm",
	}, voteHandlers.FindLPs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_lp",
		Description: "Delete an LP together with their votes and introduction requests",
	}, voteHandlers.DeleteLP)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_vote",
		Description: "Record or merge an LP's vote on a deal; one vote per LP per deal",
	}, voteHandlers.SubmitVote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_votes",
		Description: "List the votes on a deal with the computed summary",
	}, voteHandlers.ListVotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_vote",
		Description: "Delete a vote and its introduction request",
	}, voteHandlers.DeleteVote)

	// Introductions
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_introduction_candidates",
		Description: "List votes that qualify for a founder introduction, unhandled ones first",
	}, introHandlers.ListIntroductionCandidates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_introduction",
		Description: "Mark an introduction as sent and queue the email to the recipients",
	}, introHandlers.SendIntroduction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decline_introduction",
		Description: "Mark an introduction as declined",
	}, introHandlers.DeclineIntroduction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_manual_introduction",
		Description: "Open an introduction request for any LP and deal, creating a placeholder vote if needed",
	}, introHandlers.CreateManualIntroduction)

	// Visualization
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_pipeline_graph",
		Description: "Render the deal pipeline as a Graphviz graph",
	}, vizHandlers.GeneratePipelineGraph)

	// Resources
	server.AddResource(&mcp.Resource{
		URI:         "fund://deals",
		Name:        "deals",
		Description: "All deals, newest first",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "fund://deals/{id}",
		Name:        "deal",
		Description: "A deal with its vote summary and founders",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "fund://pipeline",
		Name:        "pipeline",
		Description: "Deal counts and net scores per stage",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "fund://introductions",
		Name:        "introductions",
		Description: "Introduction candidates and their request status",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "deal-review",
		Description: "Review a deal using its details, founders and LP votes",
		Arguments: []*mcp.PromptArgument{
			{Name: "deal_id", Description: "Deal to review", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "pipeline-analysis",
		Description: "Analyze the pipeline by stage",
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "introduction-brief",
		Description: "Plan the next founder introductions from the candidate queue",
	}, promptHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(svc *pipeline.Service, log *logger.Logger, version string) error {
	log.Info("starting MCP server", "version", version)

	server := NewMCPServer(svc, version)
	return server.Run(context.Background(), &mcp.StdioTransport{})
}
