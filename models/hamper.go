package models

import "github.com/shopspring/decimal"

// Hamper groups items shown together on one slide. Items may be empty and may repeat.
type Hamper struct {
	ID    string `json:"id"`
	Items []Item `json:"items"`
}

// Total is the plain sum of each item's Price, in listed order
func (h Hamper) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range h.Items {
		total = total.Add(item.Price())
	}
	return total
}

func (Hamper) slideType() SlideType { return SlideTypeHamper }

func (h Hamper) clone() Hamper {
	out := Hamper{ID: h.ID}
	if h.Items != nil {
		out.Items = make([]Item, len(h.Items))
		copy(out.Items, h.Items)
	}
	return out
}
