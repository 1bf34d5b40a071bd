// ABOUTME: Vote CLI commands
// ABOUTME: Records LP votes on deals and lists them with the live summary
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

// VoteCommand submits or amends an LP's vote. Only passed flags are written.
func VoteCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("vote", flag.ExitOnError)
	dealID := fs.String("deal", "", "Deal ID (required)")
	lpID := fs.String("lp", "", "LP ID (required)")
	conviction := fs.Int("conviction", 0, "Conviction level 1-4")
	strongNo := fs.Bool("strong-no", false, "Strong objection")
	pilot := fs.Bool("pilot", false, "Interested in piloting")
	pilotResponse := fs.String("pilot-response", "", "hell_yes, very_interested, interested_with_conditions, not_interested")
	wouldBuy := fs.Bool("would-buy", false, "Would buy the product")
	buyingResponse := fs.String("buying-response", "", "absolutely, very_likely, probably, unlikely")
	comment := fs.String("comment", "", "Comment")
	feedback := fs.String("feedback", "", "Feedback for the founders")
	review := fs.String("review", "", "Review status: to_review or reviewed")
	_ = fs.Parse(args)

	deal, err := pipeline.ParseID("--deal", *dealID)
	if err != nil {
		return err
	}
	lp, err := pipeline.ParseID("--lp", *lpID)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	in := models.VoteInput{
		DealID:                 deal,
		LPID:                   lp,
		PilotCustomerResponse:  stringIf(set, "pilot-response", pilotResponse),
		BuyingInterestResponse: stringIf(set, "buying-response", buyingResponse),
		Comment:                stringIf(set, "comment", comment),
		Feedback:               stringIf(set, "feedback", feedback),
		ReviewStatus:           stringIf(set, "review", review),
	}
	if set["conviction"] {
		in.ConvictionLevel = conviction
	}
	if set["strong-no"] {
		in.StrongNo = strongNo
	}
	if set["pilot"] {
		in.PilotCustomerInterest = pilot
	}
	if set["would-buy"] {
		in.WouldBuy = wouldBuy
	}

	vote, err := svc.SubmitVote(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Vote recorded (ID: %s)\n", vote.ID)
	fmt.Fprintf(stdout, "  Conviction: %d  Strong no: %t\n", vote.ConvictionLevel, vote.StrongNo)
	if vote.QualifiesForIntroduction() {
		fmt.Fprintln(stdout, "  Qualifies for an introduction")
	}
	return nil
}

// ListVotesCommand lists the votes on a deal.
func ListVotesCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("list-votes", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: list-votes <deal-id>")
	}
	dealID, err := pipeline.ParseID("deal id", fs.Arg(0))
	if err != nil {
		return err
	}

	votes, err := svc.ListVotes(context.Background(), dealID)
	if err != nil {
		return err
	}

	if len(votes) == 0 {
		fmt.Fprintln(stdout, "No votes yet")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LP\tCONVICTION\tSTRONG NO\tPILOT\tBUYING\tREVIEW\tID")
	_, _ = fmt.Fprintln(w, "--\t----------\t---------\t-----\t------\t------\t--")
	for _, v := range votes {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%t\t%s\t%s\t%s\t%s\n",
			shortID(v.LPID.String()), v.ConvictionLevel, v.StrongNo,
			orDash(v.PilotCustomerResponse), orDash(v.BuyingInterestResponse), orDash(v.ReviewStatus), v.ID)
	}
	_ = w.Flush()

	s := models.Summarize(votes)
	fmt.Fprintf(stdout, "\nTotal: %d vote(s), net score %+d\n", s.TotalVotes, s.NetScore)
	return nil
}

// DeleteVoteCommand deletes a vote and its introduction request.
func DeleteVoteCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("delete-vote", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: delete-vote <id>")
	}
	id, err := pipeline.ParseID("vote id", fs.Arg(0))
	if err != nil {
		return err
	}

	if err := svc.DeleteVote(context.Background(), id); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Deleted vote: %s\n", id)
	return nil
}
