package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/umami-atlas/pkg/adapters"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/umami-atlas/pkg/services/config"
	"github.com/de-tools/umami-atlas/pkg/services/summary"
	"github.com/de-tools/umami-atlas/pkg/services/timerange"
)

type SummaryCmd struct {
	connection    connectionOpts
	day           string
	funnelNames   string
	reportNameMap string
	funnelsConfig string
	format        string
	output        string
	reporter      *export.Reporter
}

func NewSummaryCmd(reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch one day of basic metrics and configured funnel metrics",
		RunE:  sc.run,
	}

	addConnectionFlags(cmd, &sc.connection)
	cmd.Flags().StringVar(&sc.day, "day", "", "Day in YYYY-MM-DD. Defaults to yesterday in selected timezone.")
	cmd.Flags().StringVar(&sc.funnelNames, "funnel-names", "", "Comma-separated target funnel names. Defaults to UMAMI_FUNNEL_NAMES or the built-in set.")
	cmd.Flags().StringVar(&sc.reportNameMap, "report-name-map", "", "JSON object mapping requested funnel names to actual dashboard report names.")
	cmd.Flags().StringVar(&sc.funnelsConfig, "funnels-config", "", "Path to a YAML funnels config. Overrides --funnel-names.")
	cmd.Flags().StringVar(&sc.format, "format", export.FormatMarkdown, "Output format: markdown or json.")
	cmd.Flags().StringVar(&sc.output, "output", "", "Write output to file path instead of stdout.")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := sc.connection.resolve(ctx)
	if err != nil {
		return err
	}

	day, err := timerange.ResolveDay(sc.day, settings.Timezone)
	if err != nil {
		return err
	}

	requests, err := sc.funnelRequests()
	if err != nil {
		return err
	}

	client, err := sc.connection.newClient(settings)
	if err != nil {
		return err
	}

	result, err := summary.NewController(client).BuildDailySummary(ctx, settings.WebsiteID, day, requests)
	if err != nil {
		return err
	}

	return sc.reporter.Handle(adapters.MapSummaryDomainToApi(*result), export.Options{
		Format:     sc.format,
		OutputPath: sc.output,
	})
}

// funnelRequests picks the funnel set: a YAML config wins, then the
// --funnel-names flag, then UMAMI_FUNNEL_NAMES, then the built-in default.
func (sc *SummaryCmd) funnelRequests() ([]domain.FunnelRequest, error) {
	if sc.funnelsConfig != "" {
		return config.LoadFunnelRequests(sc.funnelsConfig)
	}

	names := sc.funnelNames
	if names == "" {
		names = envOr("UMAMI_FUNNEL_NAMES", config.DefaultFunnelNames)
	}

	rawMap := sc.reportNameMap
	if rawMap == "" {
		rawMap = envOr("UMAMI_FUNNEL_REPORT_MAP", "")
	}
	reportMap, err := config.ParseReportMap(rawMap)
	if err != nil {
		return nil, err
	}

	return config.BuildFunnelRequests(config.ParseFunnelNames(names), reportMap), nil
}
