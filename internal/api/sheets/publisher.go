package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"

	"github.com/Alias1177/StockPicker/internal/model"
)

// Publisher writes daily picks to one worksheet of a spreadsheet
type Publisher struct {
	srv           *sheets.Service
	spreadsheetID string
	worksheet     string
	now           func() time.Time
	logger        zerolog.Logger
}

// NewPublisher creates a publisher over an authenticated service
func NewPublisher(srv *sheets.Service, spreadsheetID, worksheet string) *Publisher {
	return &Publisher{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		now:           time.Now,
		logger:        log.With().Str("component", "sheets").Logger(),
	}
}

// Publish replaces the worksheet contents with recs
func (p *Publisher) Publish(ctx context.Context, recs *model.Recommendations) error {
	rows := FormatRows(recs, p.now())
	if len(rows) == 0 {
		return fmt.Errorf("no recommendations to publish")
	}

	sheetID, err := p.ensureWorksheet(ctx)
	if err != nil {
		return err
	}

	if _, err := p.srv.Spreadsheets.Values.Clear(p.spreadsheetID, p.worksheet+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing worksheet %q: %w", p.worksheet, err)
	}
	p.logger.Debug().Str("worksheet", p.worksheet).Msg("Cleared existing data")

	resp, err := p.srv.Spreadsheets.Values.Update(p.spreadsheetID, p.worksheet+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing worksheet %q: %w", p.worksheet, err)
	}
	p.logger.Info().Int64("cells", resp.UpdatedCells).Str("worksheet", p.worksheet).Msg("Updated Google Sheet")

	// Formatting is cosmetic; the data is already written.
	if err := p.formatHeader(ctx, sheetID); err != nil {
		p.logger.Warn().Err(err).Msg("Error applying formatting")
	}
	return nil
}

// ensureWorksheet returns the worksheet's sheet id, creating it if needed
func (p *Publisher) ensureWorksheet(ctx context.Context) (int64, error) {
	ss, err := p.srv.Spreadsheets.Get(p.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("getting spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == p.worksheet {
			return sh.Properties.SheetId, nil
		}
	}

	resp, err := p.srv.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: p.worksheet},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("creating worksheet %q: %w", p.worksheet, err)
	}
	p.logger.Info().Str("worksheet", p.worksheet).Msg("Created worksheet")

	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		return resp.Replies[0].AddSheet.Properties.SheetId, nil
	}
	return 0, nil
}

func (p *Publisher) formatHeader(ctx context.Context, sheetID int64) error {
	columns := int64(len(Headers))
	_, err := p.srv.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   columns,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat:      &sheets.TextFormat{Bold: true},
							BackgroundColor: &sheets.Color{Red: 0.8, Green: 0.9, Blue: 1.0},
						},
					},
					Fields: "userEnteredFormat.textFormat.bold,userEnteredFormat.backgroundColor",
				},
			},
			{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   columns,
					},
				},
			},
		},
	}).Context(ctx).Do()
	return err
}
