// Package report renders grading pass results for human consumption:
// terminal text, CSV for spreadsheets, and a simple HTML page.
package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/odds-tracker/internal/models"
	"github.com/yourusername/odds-tracker/internal/service"
)

// GenerateConsoleReport formats a pass result for terminal output
func GenerateConsoleReport(result *service.PassResult) string {
	var builder strings.Builder
	builder.WriteString("Odds Accuracy Report\n")
	builder.WriteString("====================\n")
	builder.WriteString(fmt.Sprintf("Pass: %s\n", result.PassID))
	builder.WriteString(fmt.Sprintf("Grouping: %s\n", result.Grouping))
	builder.WriteString(fmt.Sprintf("Generated: %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05")))

	builder.WriteString(fmt.Sprintf("%-12s %8s %10s %6s %6s %6s\n",
		"Group", "Games", "ML Acc", "Over", "Under", "Push"))
	for _, row := range result.Rows {
		key := row.GroupKey
		if row.IsTotal {
			key = "Total"
		}
		builder.WriteString(fmt.Sprintf("%-12s %8d %9.1f%% %6d %6d %6d\n",
			key, row.GameCount, row.MoneylineAccuracy*100,
			row.OverCount, row.UnderCount, row.PushCount))
	}

	builder.WriteString("\nSpread Coverage Breakdown\n")
	builder.WriteString("-------------------------\n")
	for _, g := range result.Labeled {
		builder.WriteString(fmt.Sprintf("%-24s %s\n", g.Matchup(), atsResult(g)))
	}

	return builder.String()
}

// GenerateCSVExport writes the summary rows for spreadsheets
func GenerateCSVExport(result *service.PassResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("group,game_count,moneyline_accuracy,over_count,under_count,push_count\n")
	for _, row := range result.Rows {
		key := row.GroupKey
		if row.IsTotal {
			key = "total"
		}
		builder.WriteString(fmt.Sprintf("%s,%d,%.4f,%d,%d,%d\n",
			key, row.GameCount, row.MoneylineAccuracy,
			row.OverCount, row.UnderCount, row.PushCount))
	}

	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}

// GenerateHTMLReport creates a simple HTML report
func GenerateHTMLReport(result *service.PassResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var rows strings.Builder
	for _, row := range result.Rows {
		key := row.GroupKey
		if row.IsTotal {
			key = "Total"
		}
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>%.1f%%</td><td>%d</td><td>%d</td><td>%d</td></tr>\n",
			html.EscapeString(key), row.GameCount, row.MoneylineAccuracy*100,
			row.OverCount, row.UnderCount, row.PushCount))
	}

	var games strings.Builder
	for _, g := range result.Labeled {
		games.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d-%d</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(g.Matchup()), g.HomeScore, g.AwayScore,
			g.OpeningPointSpread.String(), html.EscapeString(atsResult(g)), g.Label.OUResult))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Odds Accuracy Report</title></head>
<body>
<h1>Odds Accuracy Report</h1>
<p><strong>Pass:</strong> %s</p>
<p><strong>Grouping:</strong> %s</p>
<h2>Summary</h2>
<table border="1">
<tr><th>Group</th><th>Games</th><th>ML Accuracy</th><th>Over</th><th>Under</th><th>Push</th></tr>
%s</table>
<h2>Games</h2>
<table border="1">
<tr><th>Matchup</th><th>Score</th><th>Spread</th><th>Favorite ATS</th><th>O/U</th></tr>
%s</table>
</body>
</html>`,
		result.PassID, result.Grouping, rows.String(), games.String())

	return os.WriteFile(outputPath, []byte(page), 0o644)
}

// atsResult formats the against-the-spread outcome the way the dashboard
// table showed it
func atsResult(g models.LabeledGame) string {
	switch g.Label.SpreadCoverage {
	case models.SpreadHomeCovered, models.SpreadAwayCovered:
		return "Covered"
	case models.SpreadHomeMissed, models.SpreadAwayMissed:
		return "Not Covered"
	default:
		return "N/A"
	}
}
