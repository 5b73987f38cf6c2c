package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGenerator_Description(t *testing.T) {
	g := NewFallbackGenerator()

	desc, err := g.GenerateDescription(context.Background(), ProductInfo{Name: "Shea Butter"}, "casual")
	require.NoError(t, err)
	assert.NotEmpty(t, desc)
}

func TestFallbackGenerator_HashtagsPerPlatform(t *testing.T) {
	g := NewFallbackGenerator()

	tests := []struct {
		platform string
		contains string
	}{
		{"instagram", "#NewArrival"},
		{"Instagram", "#NewArrival"}, //大文字小文字は区別しない
		{"facebook", "Shop now"},
		{"twitter", "#NewProduct"},
		{"tiktok", "#Trending"}, //未知のプラットフォームは汎用タグ
		{"", "#Trending"},
	}

	for _, tt := range tests {
		got, err := g.GenerateHashtags(context.Background(), ProductInfo{}, tt.platform)
		require.NoError(t, err)
		assert.Contains(t, got, tt.contains, "platform %q", tt.platform)
	}
}

func TestFallbackGenerator_SuggestReply(t *testing.T) {
	g := NewFallbackGenerator()

	reply, err := g.SuggestReply(context.Background(), []ChatTurn{
		{FromCustomer: true, Content: "Is this still available?"},
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(reply, "Thank you"))
}
