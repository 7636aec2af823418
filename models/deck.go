package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlideNotFound = errors.New("slide not found")
	ErrInvalidMove   = errors.New("invalid slide move")
)

// Deck is the user-editable presentation: details, ordered slides and the active slide.
// ActiveSlideID is nil or names a slide present in Slides after every operation.
type Deck struct {
	ID            string    `json:"id"`
	Details       Details   `json:"details"`
	Slides        []Slide   `json:"slides"`
	ActiveSlideID *string   `json:"activeSlideId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewDeck creates an empty deck
func NewDeck(details Details) *Deck {
	return &Deck{
		ID:        uuid.NewString(),
		Details:   details,
		Slides:    []Slide{},
		UpdatedAt: time.Now().UTC(),
	}
}

func (d *Deck) indexOf(id string) int {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Deck) touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Slide returns the slide with id
func (d *Deck) Slide(id string) (Slide, error) {
	i := d.indexOf(id)
	if i < 0 {
		return Slide{}, fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	return d.Slides[i].Clone(), nil
}

// AddSlide appends s and makes it active
func (d *Deck) AddSlide(s Slide) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsTemplate() {
		return fmt.Errorf("%w: template slides are fixed and cannot be added", ErrInvalidSlide)
	}
	if d.indexOf(s.ID) >= 0 {
		return fmt.Errorf("%w: duplicate slide id %s", ErrInvalidSlide, s.ID)
	}
	d.Slides = append(d.Slides, s.Clone())
	id := s.ID
	d.ActiveSlideID = &id
	d.touch()
	return nil
}

// SelectSlide makes the slide with id active
func (d *Deck) SelectSlide(id string) error {
	if d.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	d.ActiveSlideID = &id
	d.touch()
	return nil
}

// UpdateSlide replaces the slide with id by fn's result. The id cannot change.
func (d *Deck) UpdateSlide(id string, fn func(Slide) (Slide, error)) (Slide, error) {
	i := d.indexOf(id)
	if i < 0 {
		return Slide{}, fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	updated, err := fn(d.Slides[i].Clone())
	if err != nil {
		return Slide{}, err
	}
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return Slide{}, err
	}
	if updated.IsTemplate() {
		return Slide{}, fmt.Errorf("%w: user slides cannot become templates", ErrInvalidSlide)
	}
	d.Slides[i] = updated.Clone()
	d.touch()
	return updated, nil
}

// DeleteSlide removes the slide with id. If it was active, the first remaining
// slide becomes active, or none when the deck is empty.
func (d *Deck) DeleteSlide(id string) error {
	i := d.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, id)
	}
	d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
	if d.ActiveSlideID != nil && *d.ActiveSlideID == id {
		d.ActiveSlideID = nil
		if len(d.Slides) > 0 {
			first := d.Slides[0].ID
			d.ActiveSlideID = &first
		}
	}
	d.touch()
	return nil
}

// MoveSlide moves the slide at index from to index to, shifting the others
func (d *Deck) MoveSlide(from, to int) error {
	n := len(d.Slides)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: from=%d to=%d with %d slides", ErrInvalidMove, from, to, n)
	}
	if from == to {
		return nil
	}
	s := d.Slides[from]
	d.Slides = append(d.Slides[:from], d.Slides[from+1:]...)
	d.Slides = append(d.Slides[:to], append([]Slide{s}, d.Slides[to:]...)...)
	d.touch()
	return nil
}

// UpdateDetails replaces the engagement details
func (d *Deck) UpdateDetails(details Details) {
	d.Details = details
	d.touch()
}

// Snapshot returns a deep copy that later edits to d cannot affect
func (d *Deck) Snapshot() *Deck {
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		out.Slides[i] = s.Clone()
	}
	if d.ActiveSlideID != nil {
		id := *d.ActiveSlideID
		out.ActiveSlideID = &id
	}
	return &out
}
