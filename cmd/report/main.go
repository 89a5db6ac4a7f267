// Package main provides the one-shot reporting CLI: load the settled-games
// table, grade it, and emit summary reports.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/odds-tracker/internal/config"
	"github.com/yourusername/odds-tracker/internal/datasource"
	"github.com/yourusername/odds-tracker/internal/logger"
	"github.com/yourusername/odds-tracker/internal/models"
	"github.com/yourusername/odds-tracker/internal/report"
	"github.com/yourusername/odds-tracker/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	grouping    string
	dateFilter  string
	teamFilter  string
	outputDir   string
	skipInvalid bool
	appLog      *logrus.Logger
	cfg         *config.Config
)

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&grouping, "grouping", "g", "", "Grouping for summary rows: week or date (default from config)")
	rootCmd.Flags().StringVarP(&dateFilter, "date", "d", "", "Only include games on this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&teamFilter, "team", "t", "", "Only include games involving this team")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for csv/html reports (default from config)")
	rootCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Skip invalid records instead of aborting the pass")
}

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Grade settled games against their opening lines",
	Long:  `Loads the settled-games comparison table, derives moneyline, spread, and over/under outcomes per game, and emits grouped accuracy summaries.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context())
	},
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runReport(ctx context.Context) error {
	source, err := datasource.NewSource(&cfg.Data, appLog)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}

	svc := service.NewAccuracyService(source, cfg.Data.CacheTTL(), appLog)

	records, err := svc.LoadTable(ctx)
	if err != nil {
		return err
	}

	records, err = applyFilters(records)
	if err != nil {
		return err
	}

	if skipInvalid {
		valid, rejected := svc.ValidRecords(records)
		if rejected > 0 {
			appLog.WithField("rejected", rejected).Warn("Skipped invalid records")
		}
		records = valid
	}

	if len(records) == 0 {
		return models.ErrEmptyInput
	}

	result, err := svc.RunPass(ctx, records, resolveGrouping())
	if err != nil {
		return err
	}

	return emit(result)
}

func applyFilters(records []models.GameRecord) ([]models.GameRecord, error) {
	if dateFilter != "" {
		date, err := time.Parse("2006-01-02", dateFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid date filter: %w", err)
		}
		records = service.FilterByDate(records, date)
	}
	if teamFilter != "" {
		records = service.FilterByTeam(records, teamFilter)
	}
	return records, nil
}

func resolveGrouping() service.Grouping {
	if grouping != "" {
		return service.Grouping(grouping)
	}
	return service.Grouping(cfg.Report.Grouping)
}

func emit(result *service.PassResult) error {
	dir := outputDir
	if dir == "" {
		dir = cfg.Report.OutputPath
	}

	if slices.Contains(cfg.Report.Formats, "console") {
		fmt.Fprint(os.Stdout, report.GenerateConsoleReport(result))
	}
	if slices.Contains(cfg.Report.Formats, "csv") {
		path := filepath.Join(dir, "summary.csv")
		if err := report.GenerateCSVExport(result, path); err != nil {
			return fmt.Errorf("writing csv report: %w", err)
		}
		appLog.WithField("path", path).Info("CSV report written")
	}
	if slices.Contains(cfg.Report.Formats, "html") {
		path := filepath.Join(dir, "report.html")
		if err := report.GenerateHTMLReport(result, path); err != nil {
			return fmt.Errorf("writing html report: %w", err)
		}
		appLog.WithField("path", path).Info("HTML report written")
	}
	return nil
}
