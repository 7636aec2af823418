package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Details describes the client engagement shown on the requirements slide
type Details struct {
	ClientName       string `json:"clientName"`
	Purpose          string `json:"purpose,omitempty"`
	Quantity         int    `json:"quantity"`
	BudgetExclGST    int64  `json:"budgetExclGst"`
	BudgetInclGST    int64  `json:"budgetInclGst"`
	Deadline         Date   `json:"deadline"`
	BrandingRequired bool   `json:"brandingRequired"`
	CustomPackaging  bool   `json:"customPackaging"`
	DeliveryLocation string `json:"deliveryLocation,omitempty"`
	Remarks          string `json:"remarks,omitempty"`
}

// DateLayout is the wire form of a Date
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero Date means "not set".
type Date struct {
	time.Time
}

// NewDate returns the calendar day of t in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts "2006-01-02", an RFC 3339 timestamp, "" or null
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = Date{t}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s or RFC 3339", s, DateLayout)
	}
	*d = NewDate(t.Year(), t.Month(), t.Day())
	return nil
}
