package service

import (
	"context"

	"happywrap-deck/models"
)

// sampleRows is shown when no live catalog is reachable
var sampleRows = [][]interface{}{
	{"ID", "Product Name", "MRP", "HW Cost", "HW GST", "Client", "Client GST", "Price Tag", "Image URL", "Category", "Sub Category", "Brand"},
	{"sample-1", "Glory Mixer Grinder", "₹4,500", "2,800", "3,304", "3,999", "4,718.82", "Premium", "", "Kitchen", "Appliances", "Glory"},
	{"sample-2", "Sumo Mixer Grinder", "₹3,200", "1,950", "2,301", "2,799", "3,302.82", "Value", "", "Kitchen", "Appliances", "Sumo"},
	{"sample-3", "Vietri Copper Bottle", "₹1,499", "620", "731.60", "999", "1,178.82", "Gifting", "", "Drinkware", "Bottles", "Vietri"},
	{"sample-4", "Vietri Desk Organiser", "₹899", "380", "448.40", "649", "765.82", "Office", "", "Office", "Desk", "Vietri"},
}

// SampleSource is the built-in catalog. It never fails.
type SampleSource struct{}

// Ensure SampleSource implements CatalogSource
var _ CatalogSource = SampleSource{}

func (SampleSource) Name() string { return "sample" }

func (SampleSource) FetchItems(context.Context) ([]models.Item, error) {
	return ItemsFromRows(sampleRows)
}
