package service

import (
	"fmt"
	"strings"

	"happywrap-deck/models"
	"happywrap-deck/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product sheet column headers
const (
	colID          = "ID"
	colName        = "Product Name"
	colMRP         = "MRP"
	colHWCost      = "HW Cost"
	colHWGST       = "HW GST"
	colClient      = "Client"
	colClientGST   = "Client GST"
	colPriceTag    = "Price Tag"
	colImageURL    = "Image URL"
	colCategory    = "Category"
	colSubCategory = "Sub Category"
	colBrand       = "Brand"
)

// ItemsFromRows maps a header row plus data rows to catalog items.
// Columns are located by header name, so their order in the sheet does not matter.
// Rows without a product name are skipped.
func ItemsFromRows(rows [][]interface{}) ([]models.Item, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet has no header row")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(cellString(h)))] = i
	}
	if _, ok := index[strings.ToLower(colName)]; !ok {
		return nil, fmt.Errorf("sheet header is missing %q", colName)
	}

	cell := func(row []interface{}, name string) string {
		i, ok := index[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(cellString(row[i]))
	}

	items := make([]models.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, colName)
		if name == "" {
			continue
		}
		id := cell(row, colID)
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, models.Item{
			ID:                 id,
			Name:               name,
			MRP:                parseAmount(cell(row, colMRP)),
			HWCost:             parseAmount(cell(row, colHWCost)),
			HWWithGST:          parseAmount(cell(row, colHWGST)),
			ClientPrice:        parseAmount(cell(row, colClient)),
			ClientPriceWithGST: parseAmount(cell(row, colClientGST)),
			PriceTag:           cell(row, colPriceTag),
			ImageURL:           utils.NormalizeImageURL(cell(row, colImageURL)),
			Category:           cell(row, colCategory),
			SubCategory:        cell(row, colSubCategory),
			Brand:              cell(row, colBrand),
		})
	}
	return items, nil
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

var amountReplacer = strings.NewReplacer("₹", "", ",", "", "Rs.", "", "Rs", "", " ", "")

// parseAmount reads "₹1,299.50" style cells; anything unparseable is zero
func parseAmount(s string) decimal.Decimal {
	s = amountReplacer.Replace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
