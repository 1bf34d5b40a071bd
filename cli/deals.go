// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for managing deals, founders and the pipeline overview
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

// setFlags returns the names of the flags given on the command line, so
// updates can tell "not passed" apart from an empty value.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func stringIf(set map[string]bool, name string, v *string) *string {
	if !set[name] {
		return nil
	}
	return v
}

func int64If(set map[string]bool, name string, v *int64) *int64 {
	if !set[name] {
		return nil
	}
	return v
}

type dealFlags struct {
	company, description, website, sector, currency, source, stage *string
	roundSize, valuation, checkSize                                *int64
	meetingBooked, partnerReview, closeDate                        *string
}

func registerDealFlags(fs *flag.FlagSet) *dealFlags {
	return &dealFlags{
		company:       fs.String("company", "", "Company name"),
		description:   fs.String("description", "", "What the company does"),
		website:       fs.String("website", "", "Company website"),
		sector:        fs.String("sector", "", "Sector"),
		currency:      fs.String("currency", "", "Currency code (default USD)"),
		source:        fs.String("source", "", "Where the deal came from"),
		stage:         fs.String("stage", "", "Pipeline stage"),
		roundSize:     fs.Int64("round-size", 0, "Round size in cents"),
		valuation:     fs.Int64("valuation", 0, "Valuation in cents"),
		checkSize:     fs.Int64("check-size", 0, "Check size in cents"),
		meetingBooked: fs.String("meeting-booked-at", "", "Meeting-booked timestamp (ISO 8601)"),
		partnerReview: fs.String("partner-review-at", "", "Partner review start (ISO 8601)"),
		closeDate:     fs.String("close-date", "", "Close date (ISO 8601)"),
	}
}

func (f *dealFlags) input(set map[string]bool) pipeline.DealInput {
	return pipeline.DealInput{
		CompanyName:             stringIf(set, "company", f.company),
		Description:             stringIf(set, "description", f.description),
		Website:                 stringIf(set, "website", f.website),
		Sector:                  stringIf(set, "sector", f.sector),
		Currency:                stringIf(set, "currency", f.currency),
		Source:                  stringIf(set, "source", f.source),
		Stage:                   stringIf(set, "stage", f.stage),
		RoundSize:               int64If(set, "round-size", f.roundSize),
		Valuation:               int64If(set, "valuation", f.valuation),
		CheckSize:               int64If(set, "check-size", f.checkSize),
		SourcingMeetingBookedAt: stringIf(set, "meeting-booked-at", f.meetingBooked),
		PartnerReviewStartedAt:  stringIf(set, "partner-review-at", f.partnerReview),
		CloseDate:               stringIf(set, "close-date", f.closeDate),
	}
}

// AddDealCommand adds a new deal.
func AddDealCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	flags := registerDealFlags(fs)
	_ = fs.Parse(args)

	if *flags.company == "" {
		return fmt.Errorf("--company is required")
	}

	deal, err := svc.CreateDeal(context.Background(), flags.input(setFlags(fs)))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Deal created: %s (ID: %s)\n", deal.CompanyName, deal.ID)
	fmt.Fprintf(stdout, "  Stage: %s\n", stageBadge(deal.Stage))
	if deal.RoundSize > 0 {
		fmt.Fprintf(stdout, "  Round: %s\n", money(deal.RoundSize, deal.Currency))
	}
	return nil
}

// UpdateDealCommand updates only the flags that were passed.
func UpdateDealCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("update-deal", flag.ExitOnError)
	flags := registerDealFlags(fs)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: update-deal [flags] <id>")
	}
	id, err := pipeline.ParseID("deal id", fs.Arg(0))
	if err != nil {
		return err
	}

	deal, err := svc.UpdateDeal(context.Background(), id, flags.input(setFlags(fs)))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Deal updated: %s\n", deal.CompanyName)
	fmt.Fprintf(stdout, "  Stage: %s\n", stageBadge(deal.Stage))
	printMilestones(deal)
	return nil
}

func printMilestones(deal *models.Deal) {
	if deal.SourcingMeetingBookedAt != nil {
		fmt.Fprintf(stdout, "  Meeting booked: %s\n", deal.SourcingMeetingBookedAt.Format("2006-01-02 15:04"))
	}
	if deal.PartnerReviewStartedAt != nil {
		fmt.Fprintf(stdout, "  Partner review: %s\n", deal.PartnerReviewStartedAt.Format("2006-01-02 15:04"))
	}
	if deal.CloseDate != nil {
		fmt.Fprintf(stdout, "  Closed: %s\n", deal.CloseDate.Format("2006-01-02"))
	}
}

func money(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100.0, currency)
}

// ShowDealCommand prints a deal with its founders and vote summary.
func ShowDealCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("show-deal", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: show-deal <id>")
	}
	id, err := pipeline.ParseID("deal id", fs.Arg(0))
	if err != nil {
		return err
	}

	detail, err := svc.GetDeal(context.Background(), id, pipeline.GetDealOptions{IncludeVotes: true, IncludeFounders: true})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, header(detail.CompanyName))
	fmt.Fprintf(stdout, "  ID: %s\n", detail.ID)
	fmt.Fprintf(stdout, "  Stage: %s\n", stageBadge(detail.Stage))
	if detail.Sector != "" {
		fmt.Fprintf(stdout, "  Sector: %s\n", detail.Sector)
	}
	if detail.Website != "" {
		fmt.Fprintf(stdout, "  Website: %s\n", detail.Website)
	}
	if detail.RoundSize > 0 {
		fmt.Fprintf(stdout, "  Round: %s\n", money(detail.RoundSize, detail.Currency))
	}
	if detail.CheckSize > 0 {
		fmt.Fprintf(stdout, "  Check: %s\n", money(detail.CheckSize, detail.Currency))
	}
	printMilestones(&detail.Deal)

	if len(detail.Founders) > 0 {
		fmt.Fprintln(stdout, "\n"+header("FOUNDERS"))
		for _, f := range detail.Founders {
			fmt.Fprintf(stdout, "  %s %s\n", f.Name, f.Email)
		}
	}

	s := detail.VoteSummary
	fmt.Fprintln(stdout, "\n"+header("VOTES"))
	fmt.Fprintf(stdout, "  %d vote(s), net score %+d\n", s.TotalVotes, s.NetScore)
	fmt.Fprintf(stdout, "  conviction 1:%d 2:%d 3:%d 4:%d  strong no:%d  to review:%d\n",
		s.Conviction1, s.Conviction2, s.Conviction3, s.Conviction4, s.StrongNoCount, s.ToReviewCount)
	return nil
}

// ListDealsCommand lists deals, most recently updated first.
func ListDealsCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by stage")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	deals, err := svc.FindDeals(context.Background(), *stage, *limit)
	if err != nil {
		return err
	}

	if len(deals) == 0 {
		fmt.Fprintln(stdout, "No deals found")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tSECTOR\tROUND\tID\tSTAGE")
	_, _ = fmt.Fprintln(w, "-------\t------\t-----\t--\t-----")

	for _, deal := range deals {
		round := "-"
		if deal.RoundSize > 0 {
			round = money(deal.RoundSize, deal.Currency)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			deal.CompanyName, orDash(deal.Sector), round, deal.ID, stageBadge(deal.Stage))
	}
	_ = w.Flush()

	fmt.Fprintf(stdout, "\nTotal: %d deal(s)\n", len(deals))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DeleteDealCommand deletes a deal that has no votes.
func DeleteDealCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("delete-deal", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: delete-deal <id>")
	}
	id, err := pipeline.ParseID("deal id", fs.Arg(0))
	if err != nil {
		return err
	}

	if err := svc.DeleteDeal(context.Background(), id); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Deleted deal: %s\n", id)
	return nil
}

// AddFounderCommand attaches a founder to a deal.
func AddFounderCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("add-founder", flag.ExitOnError)
	dealID := fs.String("deal", "", "Deal ID (required)")
	name := fs.String("name", "", "Founder name (required)")
	email := fs.String("email", "", "Email address")
	linkedin := fs.String("linkedin", "", "LinkedIn URL")
	_ = fs.Parse(args)

	id, err := pipeline.ParseID("--deal", *dealID)
	if err != nil {
		return err
	}

	founder := &models.Founder{DealID: id, Name: *name, Email: *email, LinkedIn: *linkedin}
	if err := svc.AddFounder(context.Background(), founder); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Founder added: %s (ID: %s)\n", founder.Name, founder.ID)
	return nil
}

// PipelineCommand prints deal counts and summed net score per stage.
func PipelineCommand(svc *pipeline.Service, args []string) error {
	counts, err := svc.PipelineSummary(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DEALS\tNET\tSTAGE")
	_, _ = fmt.Fprintln(w, "-----\t---\t-----")

	total := 0
	for _, c := range counts {
		total += c.Count
		_, _ = fmt.Fprintf(w, "%d\t%+d\t%s\n", c.Count, c.NetScore, stageBadge(c.Stage))
	}
	_ = w.Flush()

	fmt.Fprintf(stdout, "\nTotal: %d deal(s)\n", total)
	return nil
}
