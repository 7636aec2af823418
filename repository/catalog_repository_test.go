package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var productColumns = []string{
	"id", "name", "mrp", "hw_cost", "hw_with_gst", "client_price", "client_price_with_gst",
	"price_tag", "image_url", "category", "sub_category", "brand",
}

func TestCatalogRepository_ListProducts(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rows := sqlmock.NewRows(productColumns).
		AddRow("p1", " Glory Mixer Grinder ", "4500", "2800", "3304", "3999.5", "4719.41", "Premium",
			"https://drive.google.com/file/d/abc123/view?usp=sharing", "Kitchen", "Appliances", "Glory").
		AddRow("p2", "Vietri Bottle", "899", "400", "472", "650", "767", "", "", "", "", "")
	mock.ExpectQuery("SELECT .* FROM products").WillReturnRows(rows)

	repo := NewCatalogRepository(conn, zaptest.NewLogger(t))
	items, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Glory Mixer Grinder", items[0].Name)
	assert.True(t, decimal.RequireFromString("3999.5").Equal(items[0].ClientPrice))
	assert.Equal(t, "https://drive.google.com/thumbnail?id=abc123&sz=w1000", items[0].ImageURL)
	assert.Equal(t, "/assets/logo.png", items[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT .* FROM products").WillReturnError(errors.New("connection refused"))

	repo := NewCatalogRepository(conn, zaptest.NewLogger(t))
	_, err = repo.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
