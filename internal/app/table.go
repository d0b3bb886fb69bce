package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Alias1177/StockPicker/internal/model"
	"github.com/Alias1177/StockPicker/internal/notify"
)

// TablePublisher prints recommendations instead of writing a spreadsheet
type TablePublisher struct {
	Out io.Writer
}

// Publish renders recs as a text table followed by the summary
func (p TablePublisher) Publish(ctx context.Context, recs *model.Recommendations) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	display := &strings.Builder{}
	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Rank", "Symbol", "Company", "Call", "Target (£)", "Confidence", "Risk", "Return", "Horizon"})
	table.SetAutoWrapText(false)

	for _, pick := range recs.TopPicks {
		table.Append([]string{
			fmt.Sprintf("%d", pick.Rank),
			pick.Symbol,
			pick.CompanyName,
			pick.Recommendation,
			fmt.Sprintf("%.2f", pick.TargetPrice),
			fmt.Sprintf("%.1f", pick.ConfidenceScore),
			pick.RiskLevel,
			pick.ExpectedReturn,
			pick.TimeHorizon,
		})
	}
	table.Render()

	display.WriteString("\n")
	display.WriteString(notify.FormatSummary(recs))
	display.WriteString("\n")

	_, err := io.WriteString(p.Out, display.String())
	return err
}
