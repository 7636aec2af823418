package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItem(id, name, price string) Item {
	return Item{ID: id, Name: name, ClientPrice: decimal.RequireFromString(price), ImageURL: "/assets/logo.png"}
}

func TestNewSlideDefaultsToShow(t *testing.T) {
	s := NewItemSlide(sampleItem("1", "Mixer", "100"))
	assert.Equal(t, PriceModeShow, s.PriceMode)
	assert.Equal(t, SlideTypeItem, s.Type())
	assert.NotEmpty(t, s.ID)

	h := NewHamperSlide(Hamper{})
	assert.Equal(t, SlideTypeHamper, h.Type())
	assert.Equal(t, PriceModeShow, h.PriceMode)
}

func TestSlideJSONRoundTrip(t *testing.T) {
	s := NewHamperSlide(Hamper{ID: "h1", Items: []Item{sampleItem("1", "Mixer", "40.50")}})
	s.PriceMode = PriceModeUponRequest

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got Slide
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, PriceModeUponRequest, got.PriceMode)
	hamper, ok := got.AsHamper()
	require.True(t, ok)
	require.Len(t, hamper.Items, 1)
	assert.Equal(t, "Mixer", hamper.Items[0].Name)
}

func TestSlideUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, s Slide)
	}{
		{
			name: "missing mode means show",
			body: `{"id":"a","type":"item","content":{"id":"1","name":"Mixer","clientPrice":100,"imageUrl":""}}`,
			check: func(t *testing.T, s Slide) {
				assert.Equal(t, PriceModeShow, s.PriceMode)
				item, ok := s.AsItem()
				require.True(t, ok)
				assert.True(t, item.Price().Equal(decimal.NewFromInt(100)))
			},
		},
		{
			name: "template with requirements flag",
			body: `{"id":"t","type":"template","content":{"imageUrl":"/assets/slides/requirements.jpg","isRequirementsSlide":true}}`,
			check: func(t *testing.T, s Slide) {
				tpl, ok := s.AsTemplate()
				require.True(t, ok)
				assert.True(t, tpl.IsRequirements)
			},
		},
		{
			name:    "hamper payload tagged as item",
			body:    `{"id":"a","type":"item","content":{"id":"h","items":[]}}`,
			wantErr: true,
		},
		{
			name:    "item payload tagged as hamper",
			body:    `{"id":"a","type":"hamper","content":{"id":"1","name":"Mixer"}}`,
			wantErr: true,
		},
		{
			name:    "unknown type",
			body:    `{"id":"a","type":"video","content":{}}`,
			wantErr: true,
		},
		{
			name:    "unknown price mode",
			body:    `{"id":"a","type":"item","priceDisplayMode":"maybe","content":{"name":"Mixer"}}`,
			wantErr: true,
		},
		{
			name:    "content not an object",
			body:    `{"id":"a","type":"template","content":"x"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Slide
			err := json.Unmarshal([]byte(tt.body), &s)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlide)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestCloneDoesNotShareHamperItems(t *testing.T) {
	s := NewHamperSlide(Hamper{Items: []Item{sampleItem("1", "Mixer", "10")}})
	c := s.Clone()

	h, _ := s.AsHamper()
	h.Items[0].Name = "changed"

	ch, _ := c.AsHamper()
	assert.Equal(t, "Mixer", ch.Items[0].Name)
}

func TestWithContentChangesType(t *testing.T) {
	s := NewItemSlide(sampleItem("1", "Mixer", "10"))
	s = s.WithContent(Hamper{ID: "h"})
	assert.Equal(t, SlideTypeHamper, s.Type())
}

func TestZeroSlideIsInvalid(t *testing.T) {
	assert.ErrorIs(t, Slide{}.Validate(), ErrInvalidSlide)
	_, err := json.Marshal(Slide{})
	assert.Error(t, err)
}

func TestHamperTotal(t *testing.T) {
	h := Hamper{Items: []Item{sampleItem("1", "A", "40.50"), sampleItem("2", "B", "9.49")}}
	assert.Equal(t, "49.99", h.Total().StringFixed(2))

	reversed := Hamper{Items: []Item{h.Items[1], h.Items[0]}}
	assert.True(t, h.Total().Equal(reversed.Total()))

	assert.True(t, Hamper{}.Total().IsZero())
}
