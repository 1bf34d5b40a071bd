// ABOUTME: Introduction CLI commands
// ABOUTME: Lists introduction candidates and sends, declines or manually creates requests
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/fundops/pipeline"
)

// IntrosCommand lists votes that qualify for, or already have, an introduction.
func IntrosCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("intros", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status: none, pending, sent, declined")
	_ = fs.Parse(args)

	candidates, err := svc.ListIntroductionCandidates(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tLP\tCONVICTION\tPILOT\tBUYING\tVOTE ID\tSTATUS")
	_, _ = fmt.Fprintln(w, "-------\t--\t----------\t-----\t------\t-------\t------")

	shown := 0
	for _, c := range candidates {
		st := c.Status()
		if *status != "" && !(st == *status || (*status == "none" && st == "")) {
			continue
		}
		shown++
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			c.CompanyName, c.LPName, c.Vote.ConvictionLevel,
			orDash(c.Vote.PilotCustomerResponse), orDash(c.Vote.BuyingInterestResponse),
			c.Vote.ID, statusBadge(st))
	}

	if shown == 0 {
		fmt.Fprintln(stdout, "No introductions found")
		return nil
	}
	_ = w.Flush()

	fmt.Fprintf(stdout, "\nTotal: %d introduction(s)\n", shown)
	return nil
}

// SendIntroCommand marks an introduction sent and queues the email.
func SendIntroCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("send-intro", flag.ExitOnError)
	message := fs.String("message", "", "Introduction message")
	to := fs.String("to", "", "Comma-separated recipient emails")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: send-intro [flags] <vote-id>")
	}
	voteID, err := pipeline.ParseID("vote id", fs.Arg(0))
	if err != nil {
		return err
	}

	var recipients []string
	if *to != "" {
		recipients = strings.Split(*to, ",")
	}

	intro, err := svc.SendIntroduction(context.Background(), voteID, *message, recipients)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Introduction %s at %s\n", statusBadge(intro.Status), intro.SentAt.Format("2006-01-02 15:04"))
	return nil
}

// DeclineIntroCommand marks an introduction declined.
func DeclineIntroCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("decline-intro", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: decline-intro <vote-id>")
	}
	voteID, err := pipeline.ParseID("vote id", fs.Arg(0))
	if err != nil {
		return err
	}

	intro, err := svc.DeclineIntroduction(context.Background(), voteID)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Introduction %s\n", statusBadge(intro.Status))
	return nil
}

// ManualIntroCommand opens an introduction request for any LP on any deal.
func ManualIntroCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("manual-intro", flag.ExitOnError)
	lpID := fs.String("lp", "", "LP ID (required)")
	dealID := fs.String("deal", "", "Deal ID (required)")
	message := fs.String("message", "", "Introduction message")
	_ = fs.Parse(args)

	lp, err := pipeline.ParseID("--lp", *lpID)
	if err != nil {
		return err
	}
	deal, err := pipeline.ParseID("--deal", *dealID)
	if err != nil {
		return err
	}

	intro, vote, err := svc.CreateManualIntroduction(context.Background(), lp, deal, *message)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Introduction request %s (vote ID: %s)\n", statusBadge(intro.Status), vote.ID)
	return nil
}
