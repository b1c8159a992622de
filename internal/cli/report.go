package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/commute-microservice/internal/app"
	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/pkg/logger"
	"github.com/commute-microservice/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const notAvailable = "not available"

// builderFactory собирает ReportBuilder; в тестах подменяется
type builderFactory func(logLevel string) (usecase.ReportBuilder, func(), error)

func defaultBuilderFactory(logLevel string) (usecase.ReportBuilder, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return app.NewReportBuilder(cfg, log), func() { _ = log.Sync() }, nil
}

func reportCmd(newBuilder builderFactory) *cobra.Command {
	var from string
	var to string
	var format string
	var logLevel string

	c := &cobra.Command{
		Use:   "report",
		Short: "Build a commute report for a postcode and destination address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from = strings.TrimSpace(from)
			to = strings.TrimSpace(to)
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to must not be blank")
			}
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
			}

			builder, cleanup, err := newBuilder(logLevel)
			if err != nil {
				return err
			}
			if cleanup != nil {
				defer cleanup()
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			report := builder.Build(ctx, from, to)
			if err := ctx.Err(); err != nil {
				// прерван сигналом: частичный отчёт не печатаем
				return err
			}
			return printReport(cmd.OutOrStdout(), from, report, format)
		},
	}

	c.Flags().StringVar(&from, "from", "", "Origin postcode (required)")
	c.Flags().StringVar(&to, "to", "", "Destination address (required)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&logLevel, "log-level", zap.WarnLevel.String(), "Log level (debug|info|warn|error)")

	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

func printReport(w io.Writer, from string, report *domain.CommuteReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty":
		printPretty(w, from, report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPretty(w io.Writer, from string, report *domain.CommuteReport) {
	field(w, "From:", from)
	field(w, "To:", report.DestinationAddress)

	if !report.OriginResolved {
		field(w, "Origin:", "could not be resolved")
		return
	}

	if report.Origin != nil {
		field(w, "Origin:", report.Origin.String())
	}
	field(w, "Commute:", orNotAvailable(report.Commute.DurationText))

	legs := notAvailable
	if report.Commute.TransitLegCount != nil {
		legs = fmt.Sprintf("%d", *report.Commute.TransitLegCount)
	}
	field(w, "Transit legs:", legs)
	fmt.Fprintln(w)

	printPlaces(w, "Train stations", report.Stations)
	printPlaces(w, "Primary schools", report.PrimarySchools)
}

func printPlaces(w io.Writer, title string, places []domain.PlaceOfInterest) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(places))
	if len(places) == 0 {
		fmt.Fprintln(w, "  none found")
	}
	for _, p := range places {
		fmt.Fprintf(w, "  - %s: %s\n", p.Name, orNotAvailable(p.WalkingDistance))
	}
	fmt.Fprintln(w)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-14s%s\n", label, value)
}

func orNotAvailable(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}
