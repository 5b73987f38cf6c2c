package ai

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// プロンプトに渡す商品情報（モデルには依存しない）
type ProductInfo struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
}

type ChatTurn struct {
	FromCustomer bool
	Content      string
}

// ContentGeneratorは起動時に実装を選んで注入する。
// 呼び出し側はエラーでクラッシュせず、返ってきた文面をそのまま使えばよい。
type ContentGenerator interface {
	GenerateDescription(ctx context.Context, p ProductInfo, tone string) (string, error)
	GenerateHashtags(ctx context.Context, p ProductInfo, platform string) (string, error)
	SuggestReply(ctx context.Context, history []ChatTurn) (string, error)
}

// APIキーが無いときや外部呼び出しが失敗したときの決め打ちコンテンツ
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

const (
	fallbackDescription = "Experience premium quality with our latest product. Designed for durability and style, this item offers exceptional value. Perfect for everyday use with features that enhance your lifestyle."
	fallbackHashtags    = "#NewArrival #MustHave #Trending #ShopNow #LimitedEdition"
	fallbackReply       = "Thank you for your message! How can we help you today?"

	fallbackInstagram = "New drop alert! Don't miss out on our latest collection. Link in bio! #NewArrival #ShopNow"
	fallbackFacebook  = "We're excited to introduce our latest product! Crafted with care and designed to impress. Shop now and experience the difference."
	fallbackTwitter   = "Just launched! Check out our newest product. #NewProduct #Shopping"
)

func (g *FallbackGenerator) GenerateDescription(ctx context.Context, p ProductInfo, tone string) (string, error) {
	return fallbackDescription, nil
}

func (g *FallbackGenerator) GenerateHashtags(ctx context.Context, p ProductInfo, platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "instagram":
		return fallbackInstagram, nil
	case "facebook":
		return fallbackFacebook, nil
	case "twitter":
		return fallbackTwitter, nil
	}
	return fallbackHashtags, nil
}

func (g *FallbackGenerator) SuggestReply(ctx context.Context, history []ChatTurn) (string, error) {
	return fallbackReply, nil
}
