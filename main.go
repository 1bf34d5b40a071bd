// ABOUTME: Entry point for the fundops MCP server, CLI and web API
// ABOUTME: Loads config, opens the database and routes to the requested command
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harperreed/fundops/cli"
	"github.com/harperreed/fundops/config"
	"github.com/harperreed/fundops/db"
	"github.com/harperreed/fundops/logger"
	"github.com/harperreed/fundops/outbox"
	"github.com/harperreed/fundops/pipeline"
)

const version = "0.1.0"

type command func(*pipeline.Service, []string) error

var fundCommands = map[string]command{
	"add-deal":      cli.AddDealCommand,
	"update-deal":   cli.UpdateDealCommand,
	"show-deal":     cli.ShowDealCommand,
	"list-deals":    cli.ListDealsCommand,
	"delete-deal":   cli.DeleteDealCommand,
	"add-founder":   cli.AddFounderCommand,
	"pipeline":      cli.PipelineCommand,
	"add-lp":        cli.AddLPCommand,
	"list-lps":      cli.ListLPsCommand,
	"delete-lp":     cli.DeleteLPCommand,
	"vote":          cli.VoteCommand,
	"list-votes":    cli.ListVotesCommand,
	"delete-vote":   cli.DeleteVoteCommand,
	"intros":        cli.IntrosCommand,
	"send-intro":    cli.SendIntroCommand,
	"decline-intro": cli.DeclineIntroCommand,
	"manual-intro":  cli.ManualIntroCommand,
}

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/fundops/fundops.db)")
	configPath := flag.String("config", "", "Config file (default: ~/.config/fundops/config.yaml)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("fundops version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 && !*initOnly {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	database, err := openDatabase(cfg)
	if err != nil {
		logg.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if *initOnly {
		logg.Info("database initialized", "path", cfg.Database.Path)
		return
	}

	svc := pipeline.NewService(database, logg,
		pipeline.WithSender(outbox.New(database)),
		pipeline.WithMailFrom(cfg.Mail.From),
	)

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		err = cli.MCPCommand(svc, logg, version)

	case "web":
		err = cli.WebCommand(svc, logg, cfg.Web.Addr, commandArgs)

	case "fund":
		if len(commandArgs) == 0 {
			fmt.Println("Error: fund requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		run, ok := fundCommands[commandArgs[0]]
		if !ok {
			fmt.Printf("Unknown fund command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		err = run(svc, commandArgs[1:])

	case "viz":
		err = runViz(svc, commandArgs)

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logg.Error("command failed", "command", command, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logg.Sync()
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return db.OpenDatabaseWithDriver(cfg.Database.Driver, cfg.Database.Path)
}

func runViz(svc *pipeline.Service, args []string) error {
	if len(args) == 0 {
		fmt.Println("Error: viz requires a subcommand")
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "graph":
		if len(args) < 2 || args[1] != "pipeline" {
			fmt.Println("Error: viz graph requires a type (pipeline)")
			printUsage()
			os.Exit(1)
		}
		return cli.VizGraphPipelineCommand(svc, args[2:])
	case "dashboard":
		return cli.VizDashboardCommand(svc, args[1:])
	default:
		fmt.Printf("Unknown viz command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
	return nil
}

func printUsage() {
	fmt.Printf(`fundops v%s - Deal evaluation pipeline for venture funds

USAGE:
  fundops [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/fundops/fundops.db)
  --config <path>        Config file (default: ~/.config/fundops/config.yaml)
  --init                 Initialize database and exit

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  web                    Serve the HTTP JSON API
    --addr <addr>          Listen address (default from config, :8080)
  fund                   Deal, LP, vote and introduction commands
  viz                    Visualization commands

FUND COMMANDS:
  fundops fund add-deal       Add a new deal
    --company <name>            Company name (required)
    --description <text>        What the company does
    --website <url>             Company website
    --sector <sector>           Sector
    --round-size <cents>        Round size in cents
    --valuation <cents>         Valuation in cents
    --check-size <cents>        Our check size in cents
    --currency <code>           Currency code (default: USD)
    --source <source>           Where the deal came from
    --stage <stage>             Stage (default: sourcing)
    --meeting-booked-at <ts>    Override the meeting-booked milestone
    --partner-review-at <ts>    Override the partner review milestone
    --close-date <ts>           Override the close date

  fundops fund update-deal [flags] <id>  Update a deal (same flags as add-deal)
    Note: flags must come before the deal ID

  fundops fund show-deal <id>     Show a deal with founders and vote summary
  fundops fund list-deals         List deals
    --stage <stage>               Filter by stage
    --limit <n>                   Max results (default: 50)
  fundops fund delete-deal <id>   Delete a deal without votes
  fundops fund pipeline           Deal counts and net score per stage

  fundops fund add-founder        Add a founder to a deal
    --deal <id>                   Deal ID (required)
    --name <name>                 Founder name (required)
    --email <email>               Email address
    --linkedin <url>              LinkedIn profile

  fundops fund add-lp             Add an LP
    --name <name>                 LP name (required)
    --email <email>               Email address
    --firm <firm>                 Firm or family office
    --notes <notes>               Notes
  fundops fund list-lps           List LPs
    --query <text>                Search by name, email or firm
    --limit <n>                   Max results (default: 50)
  fundops fund delete-lp <id>     Delete an LP and their votes

  fundops fund vote               Record or update an LP's vote on a deal
    --deal <id>                   Deal ID (required)
    --lp <id>                     LP ID (required)
    --conviction <1-4>            Conviction level
    --strong-no                   Strong objection
    --pilot                       Interested in piloting
    --pilot-response <value>      hell_yes, very_interested, interested_with_conditions, not_interested
    --would-buy                   Would buy the product
    --buying-response <value>     absolutely, very_likely, probably, unlikely
    --comment <text>              Comment
    --feedback <text>             Feedback for the founders
    --review <status>             to_review or reviewed
  fundops fund list-votes <deal-id>   List votes with summary
  fundops fund delete-vote <id>       Delete a vote

  fundops fund intros             List introduction candidates
    --status <status>             none, pending, sent or declined
  fundops fund send-intro [flags] <vote-id>   Mark sent and queue the email
    --message <text>              Introduction message
    --to <emails>                 Comma-separated recipients
  fundops fund decline-intro <vote-id>        Mark declined
  fundops fund manual-intro       Request an introduction for any LP and deal
    --lp <id>                     LP ID (required)
    --deal <id>                   Deal ID (required)
    --message <text>              Introduction message

VIZ COMMANDS:
  fundops viz graph pipeline      Generate deal pipeline graph
    --output <file>               Output file (default: stdout)
  fundops viz dashboard           Show the pipeline dashboard

EXAMPLES:
  # Start MCP server for Claude Desktop
  fundops mcp

  # Add a deal and move it to partner review
  fundops fund add-deal --company "Acme" --round-size 300000000
  fundops fund update-deal --stage partner_review <id>

  # See who wants an introduction
  fundops fund intros --status none

`, version)
}
