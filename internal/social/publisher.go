package social

import (
	"context"
	"log/slog"

	"github.com/lithammer/shortuuid/v4"

	"sellflow/internal/domain/model"
)

type PublishResult struct {
	ExternalPostID string
	PostURL        string
}

// 外部プラットフォームへの投稿。実装は起動時に注入する。
type SocialPublisher interface {
	Publish(ctx context.Context, account model.SocialAccount, post model.SocialPost) (PublishResult, error)
}

// 実際のAPIを叩かないモック実装。外部IDを採番して成功を返す。
type MockPublisher struct {
	log *slog.Logger
}

func NewMockPublisher(log *slog.Logger) *MockPublisher {
	return &MockPublisher{log: log}
}

func (p *MockPublisher) Publish(ctx context.Context, account model.SocialAccount, post model.SocialPost) (PublishResult, error) {
	externalID := shortuuid.New()

	p.log.Info("mock publish",
		slog.String("platform", string(post.Platform)),
		slog.Int64("post_id", post.ID),
		slog.String("external_id", externalID),
	)

	return PublishResult{
		ExternalPostID: externalID,
		PostURL:        "https://" + string(post.Platform) + ".example.com/posts/" + externalID,
	}, nil
}
