package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/domain/interval"
	"github.com/helixml/intervalgen/internal/log"
)

// Output formats for the generate command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type generateOptions struct {
	envFile string
	params  service.RequestParams
	output  string
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate intervals for a date range",
		Long: `Generate the ordered sub-intervals of an inclusive date range.

Granularities: year (y), quarter (q), month (m), week (w), day (d), parts (p).
With --fixed, boundaries follow the calendar instead of the begin date.
For parts, --count is the number of pieces to split the range into.`,
		Example: `  intervalgen generate --begin 2016-01-03 --end 2016-01-30 --granularity week --fixed
  intervalgen generate --begin 2015-01-31 --end 2015-06-04 -g m -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", "", "Path to .env file")
	flags.StringVar(&opts.params.Begin, "begin", "", "First day of the range (YYYY-MM-DD)")
	flags.StringVar(&opts.params.End, "end", "", "Last day of the range (YYYY-MM-DD)")
	flags.StringVarP(&opts.params.Granularity, "granularity", "g", "", "Interval kind: year, quarter, month, week, day, parts")
	flags.IntVarP(&opts.params.Count, "count", "n", 1, "Units per interval, or number of parts")
	flags.BoolVar(&opts.params.Fixed, "fixed", false, "Align boundaries to the calendar")
	flags.StringVar(&opts.params.WeekStart, "week-start", "", "First day of the week for fixed weeks (default: WEEK_START)")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "Output format: table, json, yaml")

	_ = cmd.MarkFlagRequired("begin")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("granularity")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	format := strings.ToLower(opts.output)
	switch format {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := loadConfig(opts.envFile)
	if err != nil {
		return err
	}
	slogger := log.NewStderrLogger(cfg).Slog()

	req, err := service.ParseRequest(opts.params)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	result, err := client.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), format, result)
}

func writeResult(w io.Writer, format string, result service.ScheduleResult) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Records())
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result.Records()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeTable(w, result)
	}
}

func writeTable(w io.Writer, result service.ScheduleResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tBEGIN\tEND\tDAYS\tPARTIAL")
	for i, v := range result.Values() {
		partial := ""
		if v.Partial() {
			partial = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i+1,
			interval.FormatDate(v.BeginDate()), interval.FormatDate(v.EndDate()), v.Days(), partial)
	}
	return tw.Flush()
}
