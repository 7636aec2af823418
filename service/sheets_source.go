package service

import (
	"context"
	"fmt"

	"happywrap-deck/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultSheetRange is read when no range is configured
const DefaultSheetRange = "Products!A1:Z"

// SheetsSource reads the product catalog from a Google spreadsheet
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	sheetRange    string
}

// Ensure SheetsSource implements CatalogSource
var _ CatalogSource = (*SheetsSource)(nil)

// NewSheetsSource creates a read-only Sheets client from a service account file
func NewSheetsSource(ctx context.Context, credentialsPath, spreadsheetID, sheetRange string) (*SheetsSource, error) {
	return NewSheetsSourceWithOptions(ctx, spreadsheetID, sheetRange,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
}

// NewSheetsSourceWithOptions creates a Sheets client with custom options
func NewSheetsSourceWithOptions(ctx context.Context, spreadsheetID, sheetRange string, opts ...option.ClientOption) (*SheetsSource, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if sheetRange == "" {
		sheetRange = DefaultSheetRange
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return &SheetsSource{service: srv, spreadsheetID: spreadsheetID, sheetRange: sheetRange}, nil
}

func (s *SheetsSource) Name() string { return "sheets" }

// FetchItems reads the configured range and maps it to items
func (s *SheetsSource) FetchItems(ctx context.Context) ([]models.Item, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s: %w", s.sheetRange, err)
	}
	items, err := ItemsFromRows(resp.Values)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("sheet %s has no products", s.sheetRange)
	}
	return items, nil
}
