package repository

import (
	"context"
	"errors"
	"testing"

	"happywrap-deck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckRepository_CRUD(t *testing.T) {
	repo := NewDeckRepository()
	ctx := context.Background()

	deck := models.NewDeck(models.Details{ClientName: "Acme"})
	require.NoError(t, repo.Create(ctx, deck))
	assert.Error(t, repo.Create(ctx, deck), "duplicate id")

	got, err := repo.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Details.ClientName)

	// the returned deck is a copy
	got.Details.ClientName = "Changed"
	again, err := repo.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.Details.ClientName)

	require.NoError(t, repo.Delete(ctx, deck.ID))
	_, err = repo.Get(ctx, deck.ID)
	assert.True(t, errors.Is(err, ErrDeckNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, deck.ID), ErrDeckNotFound))
}

func TestDeckRepository_UpdateIsAtomic(t *testing.T) {
	repo := NewDeckRepository()
	ctx := context.Background()
	deck := models.NewDeck(models.Details{})
	require.NoError(t, repo.Create(ctx, deck))

	slide := models.NewItemSlide(models.Item{ID: "i1", Name: "Bottle"})
	updated, err := repo.Update(ctx, deck.ID, func(d *models.Deck) error {
		return d.AddSlide(slide)
	})
	require.NoError(t, err)
	assert.Len(t, updated.Slides, 1)

	// a failing update leaves the stored deck untouched
	_, err = repo.Update(ctx, deck.ID, func(d *models.Deck) error {
		d.UpdateDetails(models.Details{ClientName: "Half applied"})
		return d.DeleteSlide("missing")
	})
	require.ErrorIs(t, err, models.ErrSlideNotFound)

	stored, err := repo.Get(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Details.ClientName)
	assert.Len(t, stored.Slides, 1)

	_, err = repo.Update(ctx, "nope", func(*models.Deck) error { return nil })
	assert.ErrorIs(t, err, ErrDeckNotFound)
}
