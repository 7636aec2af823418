package pricing

import (
	"happywrap-deck/models"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol prefixes every computed price
	CurrencySymbol = "₹"
	// UponRequestText replaces the price in upon_request mode
	UponRequestText = "Price upon request"
)

// FormatPrice returns the text of a slide's price line and whether to draw it at all.
//
// Amounts use two decimal places, rounding half away from zero.
// A non-empty override wins only in show mode.
func FormatPrice(amount decimal.Decimal, mode models.PriceMode, override string) (string, bool) {
	switch mode {
	case models.PriceModeHide:
		return "", false
	case models.PriceModeUponRequest:
		return UponRequestText, true
	}
	if override != "" {
		return override, true
	}
	return CurrencySymbol + amount.StringFixed(2), true
}

// SlidePrice formats the price line for an item or hamper slide.
// Template slides never carry a price.
func SlidePrice(s models.Slide) (string, bool) {
	switch c := s.Content().(type) {
	case models.Item:
		return FormatPrice(c.Price(), s.PriceMode, s.CustomPriceText)
	case models.Hamper:
		return FormatPrice(c.Total(), s.PriceMode, s.CustomPriceText)
	}
	return "", false
}
