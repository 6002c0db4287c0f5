package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProductFillsDefaults(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":          float64(41),
		"name":        "Red Banana Sapling",
		"price":       float64(150),
		"description": "Healthy tissue-culture red banana sapling suited for Kerala backyards.",
	})

	assert.Equal(t, int64(41), p.ID)
	assert.Equal(t, "red-banana-sapling", p.Slug)
	assert.Equal(t, 195.0, p.OriginalPrice)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, 20+41, p.Reviews)
	assert.Equal(t, "New", p.Badge)
	assert.Equal(t, ProductActive, p.Status)
	assert.Equal(t, "Red Banana Sapling", p.MetaTitle)
	assert.Equal(t, p.Description, p.MetaDescription)
	assert.Equal(t, "admin", p.CreatedBy)
	assert.Equal(t, p.Description, p.ShortDescription, "short descriptions under 100 runes pass through")
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Tags)
}

func TestNormalizeProductBackendValuesWin(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":            float64(2),
		"name":          "Neem Oil",
		"slug":          "custom-slug",
		"price":         float64(250),
		"originalPrice": float64(300),
		"rating":        float64(3.9),
		"reviews":       float64(12),
		"badge":         "Sale",
		"status":        ProductOutOfStock,
		"created_by":    "editor",
	})

	assert.Equal(t, "custom-slug", p.Slug)
	assert.Equal(t, 300.0, p.OriginalPrice)
	assert.Equal(t, 3.9, p.Rating)
	assert.Equal(t, 12, p.Reviews)
	assert.Equal(t, "Sale", p.Badge)
	assert.Equal(t, ProductOutOfStock, p.Status)
	assert.Equal(t, "editor", p.CreatedBy)
	assert.False(t, p.IsActive())
}

func TestNormalizeProductLegacyFieldNames(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":             float64(3),
		"name":           "Grow Bag",
		"stock_quantity": float64(40),
		"image_url":      "/img/bag.png",
	})
	assert.Equal(t, 40, p.Stock)
	assert.Equal(t, "/img/bag.png", p.Image)

	p = NormalizeProduct(map[string]interface{}{
		"id":    float64(4),
		"name":  "Trowel",
		"stock": float64(7),
		"image": "/img/trowel.png",
	})
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "/img/trowel.png", p.Image)
}

func TestNormalizeProductFeaturedBadge(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":       float64(5),
		"name":     "Star Fruit Sapling",
		"featured": true,
	})
	assert.True(t, p.Featured)
	assert.Equal(t, "Featured", p.Badge)
}

func TestNormalizeProductTags(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":   float64(6),
		"name": "Compost",
		"tags": []interface{}{"organic", "soil"},
	})
	assert.Equal(t, []string{"organic", "soil"}, p.Tags)

	p = NormalizeProduct(map[string]interface{}{
		"id":   float64(7),
		"name": "Mulch",
		"tags": "garden, organic , ",
	})
	assert.Equal(t, []string{"garden", "organic"}, p.Tags)
}

func TestNormalizeProductTimestamps(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":         float64(8),
		"name":       "Seeds",
		"created_at": "2025-03-10T09:30:00Z",
		"updated_at": "not a date",
	})
	require.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), p.CreatedAt.UTC())
	assert.True(t, p.UpdatedAt.IsZero())
}

func TestCartItemOfClampsQuantity(t *testing.T) {
	p := Product{ID: 1, Name: "Compost", Price: 100}
	assert.Equal(t, 1, CartItemOf(p, 0).Quantity)
	assert.Equal(t, 3, CartItemOf(p, 3).Quantity)
}
