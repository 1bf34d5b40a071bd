// ABOUTME: LP CLI commands
// ABOUTME: Adds, lists and removes limited partners
package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/fundops/models"
	"github.com/harperreed/fundops/pipeline"
)

// AddLPCommand adds a new LP.
func AddLPCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("add-lp", flag.ExitOnError)
	name := fs.String("name", "", "LP name (required)")
	email := fs.String("email", "", "Email address")
	firm := fs.String("firm", "", "Firm or family office")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	lp := &models.LP{Name: *name, Email: *email, Firm: *firm, Notes: *notes}
	if err := svc.AddLP(context.Background(), lp); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ LP added: %s (ID: %s)\n", lp.Name, lp.ID)
	return nil
}

// ListLPsCommand lists LPs matching an optional query.
func ListLPsCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("list-lps", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, email or firm")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	lps, err := svc.FindLPs(context.Background(), *query, *limit)
	if err != nil {
		return err
	}

	if len(lps) == 0 {
		fmt.Fprintln(stdout, "No LPs found")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tFIRM\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t----\t--")
	for _, lp := range lps {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", lp.Name, orDash(lp.Email), orDash(lp.Firm), lp.ID)
	}
	_ = w.Flush()

	fmt.Fprintf(stdout, "\nTotal: %d LP(s)\n", len(lps))
	return nil
}

// DeleteLPCommand removes an LP together with their votes.
func DeleteLPCommand(svc *pipeline.Service, args []string) error {
	fs := flag.NewFlagSet("delete-lp", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: delete-lp <id>")
	}
	id, err := pipeline.ParseID("lp id", fs.Arg(0))
	if err != nil {
		return err
	}

	removed, err := svc.DeleteLP(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Deleted LP: %s (%d vote(s) removed)\n", id, removed)
	return nil
}
