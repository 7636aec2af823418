package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlideType tags the variant held by a Slide
type SlideType string

const (
	SlideTypeItem     SlideType = "item"
	SlideTypeHamper   SlideType = "hamper"
	SlideTypeTemplate SlideType = "template"
)

// PriceMode controls how a slide's price line is shown
type PriceMode string

const (
	PriceModeShow        PriceMode = "show"
	PriceModeUponRequest PriceMode = "upon_request"
	PriceModeHide        PriceMode = "hide"
)

// Valid reports whether m is one of the known modes
func (m PriceMode) Valid() bool {
	switch m {
	case PriceModeShow, PriceModeUponRequest, PriceModeHide:
		return true
	}
	return false
}

// ErrInvalidSlide is returned when a slide's type tag and content disagree or are unknown
var ErrInvalidSlide = errors.New("invalid slide")

// SlideContent is implemented by Item, Hamper and TemplateSlide only
type SlideContent interface {
	slideType() SlideType
}

// Slide is one display unit of a deck. Its content is fixed to one of three
// variants and its Type is always derived from that content.
type Slide struct {
	ID              string
	CreatedAt       time.Time
	PriceMode       PriceMode
	CustomPriceText string

	content SlideContent
}

// NewItemSlide builds an item slide with PriceModeShow
func NewItemSlide(item Item) Slide {
	return newSlide(item)
}

// NewHamperSlide builds a hamper slide with PriceModeShow
func NewHamperSlide(hamper Hamper) Slide {
	if hamper.ID == "" {
		hamper.ID = uuid.NewString()
	}
	return newSlide(hamper.clone())
}

// NewTemplateSlide builds a template slide with a fixed id
func NewTemplateSlide(id string, tpl TemplateSlide) Slide {
	s := newSlide(tpl)
	s.ID = id
	return s
}

func newSlide(content SlideContent) Slide {
	return Slide{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		PriceMode: PriceModeShow,
		content:   content,
	}
}

// Type returns the variant tag, or "" for a zero Slide
func (s Slide) Type() SlideType {
	if s.content == nil {
		return ""
	}
	return s.content.slideType()
}

// Content returns the variant payload
func (s Slide) Content() SlideContent {
	return s.content
}

func (s Slide) AsItem() (Item, bool) {
	item, ok := s.content.(Item)
	return item, ok
}

func (s Slide) AsHamper() (Hamper, bool) {
	hamper, ok := s.content.(Hamper)
	if ok {
		hamper = hamper.clone()
	}
	return hamper, ok
}

func (s Slide) AsTemplate() (TemplateSlide, bool) {
	tpl, ok := s.content.(TemplateSlide)
	return tpl, ok
}

// IsTemplate reports whether the slide is one of the fixed template pages
func (s Slide) IsTemplate() bool {
	return s.Type() == SlideTypeTemplate
}

// WithContent returns a copy of s holding c; the type follows the content
func (s Slide) WithContent(c SlideContent) Slide {
	if h, ok := c.(Hamper); ok {
		c = h.clone()
	}
	s.content = c
	return s
}

// Clone returns a deep copy, so a snapshot never shares hamper item slices with the live deck
func (s Slide) Clone() Slide {
	if h, ok := s.content.(Hamper); ok {
		s.content = h.clone()
	}
	return s
}

// Validate checks the invariants a renderer relies on
func (s Slide) Validate() error {
	if s.content == nil {
		return fmt.Errorf("%w: slide %q has no content", ErrInvalidSlide, s.ID)
	}
	if !s.PriceMode.Valid() {
		return fmt.Errorf("%w: slide %q has unknown price mode %q", ErrInvalidSlide, s.ID, s.PriceMode)
	}
	return nil
}

type slideJSON struct {
	ID              string          `json:"id"`
	Type            SlideType       `json:"type"`
	Content         json.RawMessage `json:"content"`
	CreatedAt       time.Time       `json:"createdAt"`
	PriceMode       PriceMode       `json:"priceDisplayMode,omitempty"`
	CustomPriceText string          `json:"customPriceText,omitempty"`
}

// required content keys per variant; a payload missing them is treated as another variant
var requiredContentKeys = map[SlideType][]string{
	SlideTypeItem:     {"name"},
	SlideTypeHamper:   {"items"},
	SlideTypeTemplate: {"imageUrl"},
}

func (s Slide) MarshalJSON() ([]byte, error) {
	if s.content == nil {
		return nil, fmt.Errorf("%w: slide %q has no content", ErrInvalidSlide, s.ID)
	}
	content, err := json.Marshal(s.content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(slideJSON{
		ID:              s.ID,
		Type:            s.Type(),
		Content:         content,
		CreatedAt:       s.CreatedAt,
		PriceMode:       s.PriceMode,
		CustomPriceText: s.CustomPriceText,
	})
}

func (s *Slide) UnmarshalJSON(data []byte) error {
	var wire slideJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	keys, known := requiredContentKeys[wire.Type]
	if !known {
		return fmt.Errorf("%w: unknown slide type %q", ErrInvalidSlide, wire.Type)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(wire.Content, &fields); err != nil || fields == nil {
		return fmt.Errorf("%w: %s slide content must be an object", ErrInvalidSlide, wire.Type)
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("%w: %s slide content is missing %q", ErrInvalidSlide, wire.Type, k)
		}
	}

	var content SlideContent
	var err error
	switch wire.Type {
	case SlideTypeItem:
		var item Item
		err = decodeStrict(wire.Content, &item)
		content = item
	case SlideTypeHamper:
		var hamper Hamper
		err = decodeStrict(wire.Content, &hamper)
		content = hamper
	case SlideTypeTemplate:
		var tpl TemplateSlide
		err = decodeStrict(wire.Content, &tpl)
		content = tpl
	}
	if err != nil {
		return fmt.Errorf("%w: %s slide content: %v", ErrInvalidSlide, wire.Type, err)
	}

	mode := wire.PriceMode
	if mode == "" {
		mode = PriceModeShow
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown price display mode %q", ErrInvalidSlide, mode)
	}

	id := wire.ID
	if id == "" {
		id = uuid.NewString()
	}
	*s = Slide{
		ID:              id,
		CreatedAt:       wire.CreatedAt,
		PriceMode:       mode,
		CustomPriceText: wire.CustomPriceText,
		content:         content,
	}
	return nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
