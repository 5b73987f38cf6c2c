package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a professional marketing copywriter for e-commerce products."

// OpenAI呼び出し。失敗してもエラーにせずフォールバック文面を返す。
type OpenAIGenerator struct {
	client   *openai.Client
	fallback *FallbackGenerator
	log      *slog.Logger
}

func NewOpenAIGenerator(apiKey string, log *slog.Logger) *OpenAIGenerator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &OpenAIGenerator{
		client:   client,
		fallback: NewFallbackGenerator(),
		log:      log,
	}
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, maxTokens int64) (string, bool) {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(openai.ChatModelGPT3_5Turbo),
		MaxTokens:   openai.F(maxTokens),
		Temperature: openai.F(0.7),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		g.log.Error("openai call failed", slog.Any("error", err))
		return "", false
	}
	if len(resp.Choices) == 0 {
		g.log.Error("openai returned no choices")
		return "", false
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), true
}

func (g *OpenAIGenerator) GenerateDescription(ctx context.Context, p ProductInfo, tone string) (string, error) {
	category := p.Category
	if category == "" {
		category = "General"
	}
	details := p.Description
	if details == "" {
		details = "N/A"
	}

	prompt := fmt.Sprintf(`Write a compelling product description for an e-commerce product.

Product Name: %s
Price: $%s
Category: %s

Write a description that is:
- %s in tone
- Persuasive and engaging
- Around 150-200 words
- Highlighting key features and benefits
- Including any relevant details from: %s

Focus on the value proposition and make it compelling for potential buyers.`,
		p.Name, p.Price.StringFixed(2), category, tone, details)

	if out, ok := g.complete(ctx, prompt, 300); ok {
		return out, nil
	}
	return g.fallback.GenerateDescription(ctx, p, tone)
}

func (g *OpenAIGenerator) GenerateHashtags(ctx context.Context, p ProductInfo, platform string) (string, error) {
	prompt := fmt.Sprintf(`Generate 5-10 relevant hashtags for promoting this product on %s.

Product Name: %s
Category: %s

Return only the hashtags, separated by spaces, each starting with #.`,
		platform, p.Name, p.Category)

	if out, ok := g.complete(ctx, prompt, 100); ok {
		return out, nil
	}
	return g.fallback.GenerateHashtags(ctx, p, platform)
}

func (g *OpenAIGenerator) SuggestReply(ctx context.Context, history []ChatTurn) (string, error) {
	var b strings.Builder
	b.WriteString("You are helping a seller reply to a customer chat. Suggest a short, friendly, professional reply to the last customer message.\n\nConversation:\n")
	for _, turn := range history {
		role := "Seller"
		if turn.FromCustomer {
			role = "Customer"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
	}

	if out, ok := g.complete(ctx, b.String(), 200); ok {
		return out, nil
	}
	return g.fallback.SuggestReply(ctx, history)
}
