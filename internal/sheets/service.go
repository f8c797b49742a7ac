package sheets

import (
	"context"
	"fmt"

	"credit-entry-go/internal/models"
	"credit-entry-go/internal/store"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Compile-time check: *Service must satisfy store.RowStore.
var _ store.RowStore = (*Service)(nil)

// Service implements store.RowStore backed by a Google Sheets worksheet.
// The ledger lives on the first worksheet of the configured spreadsheet:
// header row `ID, Timestamp, Cashier, Bank, Credit` at row 1, one data row
// per entry below it.
type Service struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetID       int64
	sheetTitle    string
}

// NewService connects to the spreadsheet, resolves the first worksheet and
// writes the header row if the sheet is still blank.
func NewService(ctx context.Context, cfg models.SheetsConfig) (*Service, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets config requires SpreadsheetID")
	}

	zap.L().Info("Connecting to Google Sheets",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("credentials_file", cfg.CredentialsFile))

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to open spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no worksheets", cfg.SpreadsheetID)
	}

	// First worksheet holds the ledger.
	props := meta.Sheets[0].Properties
	service := &Service{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetID:       props.SheetId,
		sheetTitle:    props.Title,
	}

	if err := service.ensureHeader(ctx); err != nil {
		return nil, fmt.Errorf("unable to ensure header row: %w", err)
	}

	zap.L().Info("Sheets service initialized",
		zap.String("worksheet", props.Title),
		zap.Int64("sheet_id", props.SheetId))
	return service, nil
}

// Close is a no-op for the Sheets backend (HTTP client needs no teardown).
func (s *Service) Close() {}

func (s *Service) rangeName(a1 string) string {
	return fmt.Sprintf("'%s'!%s", s.sheetTitle, a1)
}

// ensureHeader writes the header row when row 1 is empty.
func (s *Service) ensureHeader(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeName("A1:E1")).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(store.Headers))
	for i, h := range store.Headers {
		header[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rangeName("A1:E1"),
		&sheetsapi.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return err
	}

	zap.L().Info("Header row written", zap.String("worksheet", s.sheetTitle))
	return nil
}

func (s *Service) FetchAllRows(ctx context.Context) ([]store.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeName("A2:E")).Context(ctx).Do()
	if err != nil {
		zap.L().Error("Failed to fetch rows from sheet", zap.Error(err))
		return nil, fmt.Errorf("unable to fetch rows: %w", err)
	}

	rows := make([]store.Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make(store.Row, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) AppendRow(ctx context.Context, row store.Row) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	// USER_ENTERED lets the sheet coerce numeric-looking strings to numbers
	// for display; readers must not depend on that coercion.
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.rangeName("A:E"),
		&sheetsapi.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		zap.L().Error("Failed to append row to sheet",
			zap.String("id", row.Get(store.ColID)),
			zap.Error(err))
		return fmt.Errorf("unable to append row: %w", err)
	}
	return nil
}

// FindRowByFirstColumn scans column A for an exact match and returns the
// absolute 1-based row position (header row = 1).
func (s *Service) FindRowByFirstColumn(ctx context.Context, value string) (int, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rangeName("A:A")).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to scan first column: %w", err)
	}

	for i, raw := range resp.Values {
		if i == 0 {
			continue // header row
		}
		if len(raw) > 0 && fmt.Sprint(raw[0]) == value {
			return i + 1, nil
		}
	}
	return 0, store.ErrRowNotFound
}

func (s *Service) DeleteRow(ctx context.Context, position int) error {
	if position < 2 {
		return store.ErrInvalidPosition
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    s.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(position - 1), // DimensionRange is 0-based, end exclusive
					EndIndex:   int64(position),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		zap.L().Error("Failed to delete row from sheet", zap.Int("position", position), zap.Error(err))
		return fmt.Errorf("unable to delete row: %w", err)
	}

	zap.L().Debug("Sheet row deleted", zap.Int("position", position))
	return nil
}
