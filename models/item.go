package models

import "github.com/shopspring/decimal"

// Item is a purchasable product as supplied by the catalog.
// Slides hold Items by value, so a slide never observes later catalog changes.
type Item struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	MRP                decimal.Decimal `json:"mrp"`
	HWCost             decimal.Decimal `json:"hwCost"`
	HWWithGST          decimal.Decimal `json:"hwWithGST"`
	ClientPrice        decimal.Decimal `json:"clientPrice"`
	ClientPriceWithGST decimal.Decimal `json:"clientPriceWithGST"`
	PriceTag           string          `json:"priceTag"`
	ImageURL           string          `json:"imageUrl"`
	Category           string          `json:"category,omitempty"`
	SubCategory        string          `json:"subCategory,omitempty"`
	Brand              string          `json:"brand,omitempty"`
}

// Price is the client-facing price shown on slides
func (i Item) Price() decimal.Decimal {
	return i.ClientPrice
}

func (Item) slideType() SlideType { return SlideTypeItem }
