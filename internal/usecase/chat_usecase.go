package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"sellflow/internal/ai"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"
)

type ChatUsecase struct {
	conversationRepo repo.ConversationRepository
	messageRepo      repo.MessageRepository
	notificationRepo repo.NotificationRepository
	generator        ai.ContentGenerator
	log              *slog.Logger
}

func NewChatUsecase(
	conversationRepo repo.ConversationRepository,
	messageRepo repo.MessageRepository,
	notificationRepo repo.NotificationRepository,
	generator ai.ContentGenerator,
	log *slog.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		generator:        generator,
		log:              log,
	}
}

type StartConversationInput struct {
	CustomerEmail string `json:"customer_email" validate:"required,email,max=254"`
	CustomerName  string `json:"customer_name" validate:"max=200"`
	ProductID     *int64 `json:"product_id"`
	Source        string `json:"source" validate:"max=50"`
	Message       string `json:"message" validate:"required,max=5000"`
}

// StartConversation は客側の起点。最初のメッセージ込みでスレッドを作る。
func (u *ChatUsecase) StartConversation(ctx context.Context, sellerID int64, in StartConversationInput) (model.Conversation, error) {
	if sellerID <= 0 {
		return model.Conversation{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if strings.TrimSpace(in.CustomerEmail) == "" || strings.TrimSpace(in.Message) == "" {
		return model.Conversation{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "website"
	}

	conv, err := u.conversationRepo.Create(ctx, model.Conversation{
		SellerID:      sellerID,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		ProductID:     in.ProductID,
		Status:        model.ConversationStatusOpen,
		Source:        source,
	})
	if err != nil {
		return model.Conversation{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if _, err := u.messageRepo.Create(ctx, model.Message{
		ConversationID: conv.ID,
		Sender:         model.MessageSenderCustomer,
		Content:        in.Message,
	}); err != nil {
		return model.Conversation{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if err := u.conversationRepo.TouchLastMessage(ctx, conv.ID); err != nil {
		u.log.Warn("touch conversation failed", "conversation_id", conv.ID, "err", err)
	}

	if err := u.notificationRepo.Create(ctx, model.Notification{
		UserID:  sellerID,
		Type:    model.NotificationNewMessage,
		Title:   "New message",
		Message: "You have a new message from " + conv.CustomerEmail + ".",
	}); err != nil {
		u.log.Warn("notify seller failed", "seller_id", sellerID, "err", err)
	}

	return conv, nil
}

func (u *ChatUsecase) ListConversations(ctx context.Context, sellerID int64, status string) ([]model.Conversation, error) {
	if sellerID <= 0 {
		return []model.Conversation{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	conversations, err := u.conversationRepo.ListBySeller(ctx, sellerID, status)
	if err != nil {
		return []model.Conversation{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if conversations == nil {
		conversations = []model.Conversation{}
	}
	return conversations, nil
}

// ListMessages は売り手がスレッドを開いたとき。客側メッセージを既読にする。
func (u *ChatUsecase) ListMessages(ctx context.Context, sellerID int64, conversationID int64) ([]model.Message, error) {
	conv, err := u.findOwned(ctx, sellerID, conversationID)
	if err != nil {
		return []model.Message{}, err
	}

	messages, err := u.messageRepo.ListByConversationID(ctx, conv.ID)
	if err != nil {
		return []model.Message{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if messages == nil {
		messages = []model.Message{}
	}

	if err := u.messageRepo.MarkRead(ctx, conv.ID, model.MessageSenderCustomer); err != nil {
		u.log.Warn("mark messages read failed", "conversation_id", conv.ID, "err", err)
	}
	return messages, nil
}

type SendMessageInput struct {
	Content       string `json:"content" validate:"required,max=5000"`
	IsAIGenerated bool   `json:"is_ai_generated"`
}

func (u *ChatUsecase) SendMessage(ctx context.Context, sellerID int64, conversationID int64, in SendMessageInput) (model.Message, error) {
	conv, err := u.findOwned(ctx, sellerID, conversationID)
	if err != nil {
		return model.Message{}, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if conv.Status != model.ConversationStatusOpen {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
	}

	m, err := u.messageRepo.Create(ctx, model.Message{
		ConversationID: conv.ID,
		Sender:         model.MessageSenderSeller,
		Content:        in.Content,
		IsAIGenerated:  in.IsAIGenerated,
	})
	if err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if err := u.conversationRepo.TouchLastMessage(ctx, conv.ID); err != nil {
		u.log.Warn("touch conversation failed", "conversation_id", conv.ID, "err", err)
	}
	return m, nil
}

func (u *ChatUsecase) UpdateStatus(ctx context.Context, sellerID int64, conversationID int64, status string) (model.Conversation, error) {
	conv, err := u.findOwned(ctx, sellerID, conversationID)
	if err != nil {
		return model.Conversation{}, err
	}

	next := model.ConversationStatus(status)
	switch next {
	case model.ConversationStatusOpen, model.ConversationStatusClosed, model.ConversationStatusArchived:
	default:
		return model.Conversation{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	if err := u.conversationRepo.UpdateStatus(ctx, conv.ID, next); err != nil {
		return model.Conversation{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	conv.Status = next
	return conv, nil
}

type SuggestReplyOutput struct {
	Suggestion string `json:"suggestion"`
}

// SuggestReply は会話履歴からAIの返信案を作る。メッセージは送信しない。
func (u *ChatUsecase) SuggestReply(ctx context.Context, sellerID int64, conversationID int64) (SuggestReplyOutput, error) {
	conv, err := u.findOwned(ctx, sellerID, conversationID)
	if err != nil {
		return SuggestReplyOutput{}, err
	}

	messages, err := u.messageRepo.ListByConversationID(ctx, conv.ID)
	if err != nil {
		return SuggestReplyOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	history := make([]ai.ChatTurn, 0, len(messages))
	for _, m := range messages {
		history = append(history, ai.ChatTurn{
			FromCustomer: m.Sender == model.MessageSenderCustomer,
			Content:      m.Content,
		})
	}

	suggestion, err := u.generator.SuggestReply(ctx, history)
	if err != nil {
		u.log.Warn("suggest reply failed", "conversation_id", conv.ID, "err", err)
	}
	return SuggestReplyOutput{Suggestion: suggestion}, nil
}

func (u *ChatUsecase) findOwned(ctx context.Context, sellerID int64, conversationID int64) (model.Conversation, error) {
	if sellerID <= 0 {
		return model.Conversation{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	conv, err := u.conversationRepo.FindByID(ctx, conversationID)
	if err == repo.ErrNotFound {
		return model.Conversation{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.Conversation{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if conv.SellerID != sellerID {
		return model.Conversation{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	return conv, nil
}
