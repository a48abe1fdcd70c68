package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a run summary for terminal output
func GenerateConsoleReport(result *RunResult) string {
	s := result.Summary
	var builder strings.Builder
	builder.WriteString("Replay Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", s.RunID))
	builder.WriteString(fmt.Sprintf("Strategy: %s\n", s.StrategyName))
	builder.WriteString(fmt.Sprintf("Window: %s to %s\n",
		s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02")))
	builder.WriteString(fmt.Sprintf("Picks: %d (%d-%d)\n", s.TotalPicks, s.TotalWins, s.TotalLosses))
	builder.WriteString(fmt.Sprintf("Hit Rate: %.1f%%\n", s.HitRate))
	builder.WriteString(fmt.Sprintf("Cumulative P&L: %+.1f\n", s.CumulativePnL))
	builder.WriteString(fmt.Sprintf("ROI: %+.1f%%\n", s.ROI))
	builder.WriteString(fmt.Sprintf("Switches: %d\n", s.Switches))
	builder.WriteString(fmt.Sprintf("Blocked Days: %d\n", s.BlockedDays))
	builder.WriteString(fmt.Sprintf("Models Used: %s\n", strings.Join(s.ModelsUsed, ", ")))
	return builder.String()
}

// GenerateComparisonReport formats a multi-strategy comparison as an aligned
// text table
func GenerateComparisonReport(comparison *Comparison) string {
	var builder strings.Builder
	builder.WriteString("Strategy Comparison\n")
	builder.WriteString("===================\n")
	builder.WriteString(fmt.Sprintf("%-22s %8s %8s %10s %8s %9s %8s\n",
		"Strategy", "Picks", "Hit %", "P&L", "ROI %", "Switches", "Blocked"))
	for _, result := range comparison.Results {
		s := result.Summary
		builder.WriteString(fmt.Sprintf("%-22s %8d %8.1f %10.1f %8.1f %9d %8d\n",
			s.StrategyName, s.TotalPicks, s.HitRate, s.CumulativePnL, s.ROI,
			s.Switches, s.BlockedDays))
	}
	return builder.String()
}

// GenerateCSVExport writes the day-by-day run record for spreadsheets
func GenerateCSVExport(result *RunResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("date,model,state,picks,wins,losses,hit_rate,pnl,cumulative_pnl\n")
	for _, day := range result.Daily {
		builder.WriteString(fmt.Sprintf("%s,%s,%s,%d,%d,%d,%.1f,%.1f,%.1f\n",
			day.Date.Format("2006-01-02"), day.ModelID, day.State,
			day.Picks, day.Wins, day.Losses, day.HitRate, day.PnL, day.CumulativePnL))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}

// GenerateComparisonCSV writes one summary row per strategy
func GenerateComparisonCSV(comparison *Comparison, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("strategy,picks,wins,losses,hit_rate,cumulative_pnl,roi,switches,blocked_days\n")
	for _, result := range comparison.Results {
		s := result.Summary
		builder.WriteString(fmt.Sprintf("%s,%d,%d,%d,%.1f,%.1f,%.1f,%d,%d\n",
			s.StrategyName, s.TotalPicks, s.TotalWins, s.TotalLosses,
			s.HitRate, s.CumulativePnL, s.ROI, s.Switches, s.BlockedDays))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
