package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsFromRows(t *testing.T) {
	rows := [][]interface{}{
		{"Product Name", "ID", "Client", "Image URL", "MRP"},
		{"Glory Mixer Grinder", "g1", "₹3,999.50", "https://drive.google.com/file/d/XYZ/view", 4500.0},
		{"No Id Bottle", "", "n/a", ""},
		{"", "skip-me", "100"},
	}

	items, err := ItemsFromRows(rows)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "g1", items[0].ID)
	assert.True(t, decimal.RequireFromString("3999.5").Equal(items[0].ClientPrice))
	assert.True(t, decimal.NewFromInt(4500).Equal(items[0].MRP))
	assert.Equal(t, "https://drive.google.com/thumbnail?id=XYZ&sz=w1000", items[0].ImageURL)

	assert.NotEmpty(t, items[1].ID, "missing id is generated")
	assert.True(t, items[1].ClientPrice.IsZero(), "unparseable number is zero")
	assert.Equal(t, "/assets/logo.png", items[1].ImageURL)
}

func TestItemsFromRows_BadHeader(t *testing.T) {
	_, err := ItemsFromRows(nil)
	assert.Error(t, err)

	_, err = ItemsFromRows([][]interface{}{{"Something", "Else"}})
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,299", "1299"},
		{"₹ 1,299.50", "1299.5"},
		{"Rs. 75", "75"},
		{"", "0"},
		{"abc", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAmount(tt.in).String())
		})
	}
}

func TestSampleSource(t *testing.T) {
	items, err := SampleSource{}.FetchItems(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "Glory Mixer Grinder", items[0].Name)
	assert.True(t, decimal.NewFromInt(3999).Equal(items[0].ClientPrice))
}
