package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/livestock-gva/internal/config"
	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

// LedgerRange is the sheet range GVA report rows are appended to.
const LedgerRange = "GVA!A:L"

// ValueAppender is the slice of the Sheets API the ledger needs.
type ValueAppender interface {
	Append(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository mirrors saved reports into a spreadsheet, one row per
// report.
type GoogleSheetRepository struct {
	appender ValueAppender
	logger   *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed ledger instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewLedger(&apiAppender{service: service, spreadsheetID: cfg.SpreadsheetID}, logger), nil
}

// NewLedger wraps any appender, mainly for tests.
func NewLedger(appender ValueAppender, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{appender: appender, logger: logger}
}

// AppendReport writes the report summary row.
func (r *GoogleSheetRepository) AppendReport(ctx context.Context, report models.Report) error {
	if err := r.appender.Append(ctx, LedgerRange, ReportRow(report)); err != nil {
		return err
	}
	r.logger.Debug("report appended to ledger", zap.String("report_id", report.ID))
	return nil
}

// ReportRow flattens a report into ledger columns: date, id, village, mandal,
// district, author, the five net values and the total.
func ReportRow(report models.Report) []interface{} {
	res := report.Results
	return []interface{}{
		report.CreatedAt.Format("2006-01-02"),
		report.ID,
		report.Inputs.VillageName,
		report.Inputs.Mandal,
		report.Inputs.District,
		report.Author.Name,
		res.MilkBreakdown.GVA,
		res.SheepGoatBreakdown.GVA,
		res.BuffaloMeatBreakdown.GVA,
		res.PoultryMeatBreakdown.GVA,
		res.EggBreakdown.GVA,
		res.TotalVillageGVA,
	}
}

type apiAppender struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

func (a *apiAppender) Append(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}
	return nil
}
