package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainImageURL(t *testing.T) {
	t.Run("prefers main image", func(t *testing.T) {
		p := Product{Images: []ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", IsMain: true},
		}}
		assert.Equal(t, "https://cdn.example.com/b.jpg", p.MainImageURL())
	})

	t.Run("falls back to first image", func(t *testing.T) {
		p := Product{Images: []ProductImage{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg"},
		}}
		assert.Equal(t, "https://cdn.example.com/a.jpg", p.MainImageURL())
	})

	t.Run("empty without images", func(t *testing.T) {
		assert.Equal(t, "", Product{}.MainImageURL())
	})
}

func TestIsPurchasable(t *testing.T) {
	assert.True(t, Product{Status: ProductStatusActive}.IsPurchasable())
	assert.False(t, Product{Status: ProductStatusDraft}.IsPurchasable())
	assert.False(t, Product{Status: ProductStatusArchived}.IsPurchasable())
}
