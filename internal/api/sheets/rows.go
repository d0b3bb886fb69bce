package sheets

import (
	"time"

	"github.com/Alias1177/StockPicker/internal/model"
)

const reasonColumns = 3

// Headers are the column titles of the picks table
var Headers = []any{
	"Date",
	"Rank",
	"Symbol",
	"Company Name",
	"Recommendation",
	"Target Price (£)",
	"Confidence Score",
	"Risk Level",
	"Expected Return",
	"Time Horizon",
	"Key Reason 1",
	"Key Reason 2",
	"Key Reason 3",
}

// FormatRows lays out recommendations as sheet rows: the picks table
// followed by the market overview, top sectors and key risks sections
func FormatRows(recs *model.Recommendations, now time.Time) [][]any {
	if recs == nil {
		return nil
	}

	date := now.Format("2006-01-02 15:04")
	rows := [][]any{Headers}

	for _, pick := range recs.TopPicks {
		reasons := make([]string, reasonColumns)
		copy(reasons, pick.KeyReasons)

		rows = append(rows, []any{
			date,
			pick.Rank,
			pick.Symbol,
			pick.CompanyName,
			pick.Recommendation,
			pick.TargetPrice,
			pick.ConfidenceScore,
			pick.RiskLevel,
			pick.ExpectedReturn,
			pick.TimeHorizon,
			reasons[0],
			reasons[1],
			reasons[2],
		})
	}

	rows = append(rows, []any{})
	rows = append(rows, []any{"MARKET OVERVIEW"})
	rows = append(rows, []any{recs.MarketOverview})
	rows = append(rows, []any{})

	rows = append(rows, []any{"TOP SECTORS"})
	for _, sector := range recs.TopSectors {
		rows = append(rows, []any{sector})
	}
	rows = append(rows, []any{})

	rows = append(rows, []any{"KEY RISKS"})
	for _, risk := range recs.KeyRisks {
		rows = append(rows, []any{risk})
	}

	return rows
}
