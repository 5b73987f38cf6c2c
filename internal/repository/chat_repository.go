package repository

import (
	"context"

	"sellflow/internal/domain/model"
)

type ConversationRepository interface {
	FindByID(ctx context.Context, id int64) (model.Conversation, error)
	ListBySeller(ctx context.Context, sellerID int64, status string) ([]model.Conversation, error)
	Create(ctx context.Context, c model.Conversation) (model.Conversation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ConversationStatus) error
	TouchLastMessage(ctx context.Context, id int64) error
}

type MessageRepository interface {
	ListByConversationID(ctx context.Context, conversationID int64) ([]model.Message, error)
	Create(ctx context.Context, m model.Message) (model.Message, error)
	MarkRead(ctx context.Context, conversationID int64, sender model.MessageSender) error
}
