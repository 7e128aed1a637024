package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/de-tools/umami-atlas/pkg/services/summary"
)

type ReportsCmd struct {
	connection connectionOpts
	out        io.Writer
}

// NewReportsCmd lists the funnel reports configured for the website, which
// helps when a summary comes back with missing_report statuses.
func NewReportsCmd(out io.Writer) *cobra.Command {
	rc := &ReportsCmd{out: out}
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List funnel reports configured for the website",
		RunE:  rc.run,
	}

	addConnectionFlags(cmd, &rc.connection)

	return cmd
}

func (rc *ReportsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := rc.connection.resolve(ctx)
	if err != nil {
		return err
	}

	client, err := rc.connection.newClient(settings)
	if err != nil {
		return err
	}

	names, err := summary.NewController(client).ListReportNames(ctx, settings.WebsiteID)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		_, err := fmt.Fprintln(rc.out, "No funnel reports found.")
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(rc.out, "- %s\n", name); err != nil {
			return err
		}
	}
	return nil
}
