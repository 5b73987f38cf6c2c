package usecase

import (
	"context"
	"net/http"
	"testing"

	"sellflow/internal/ai"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type conversationRepoMock struct{ mock.Mock }

func (m *conversationRepoMock) FindByID(ctx context.Context, id int64) (model.Conversation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Conversation)
	return c, args.Error(1)
}

func (m *conversationRepoMock) ListBySeller(ctx context.Context, sellerID int64, status string) ([]model.Conversation, error) {
	args := m.Called(ctx, sellerID, status)
	conversations, _ := args.Get(0).([]model.Conversation)
	return conversations, args.Error(1)
}

func (m *conversationRepoMock) Create(ctx context.Context, c model.Conversation) (model.Conversation, error) {
	args := m.Called(ctx, c)
	conv, _ := args.Get(0).(model.Conversation)
	return conv, args.Error(1)
}

func (m *conversationRepoMock) UpdateStatus(ctx context.Context, id int64, status model.ConversationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *conversationRepoMock) TouchLastMessage(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type messageRepoMock struct{ mock.Mock }

func (m *messageRepoMock) ListByConversationID(ctx context.Context, conversationID int64) ([]model.Message, error) {
	args := m.Called(ctx, conversationID)
	messages, _ := args.Get(0).([]model.Message)
	return messages, args.Error(1)
}

func (m *messageRepoMock) Create(ctx context.Context, msg model.Message) (model.Message, error) {
	args := m.Called(ctx, msg)
	created, _ := args.Get(0).(model.Message)
	return created, args.Error(1)
}

func (m *messageRepoMock) MarkRead(ctx context.Context, conversationID int64, sender model.MessageSender) error {
	args := m.Called(ctx, conversationID, sender)
	return args.Error(0)
}

func chatTestUsecase() (*conversationRepoMock, *messageRepoMock, *notificationRepoMock, *ChatUsecase) {
	conversations := new(conversationRepoMock)
	messages := new(messageRepoMock)
	notifications := new(notificationRepoMock)
	uc := NewChatUsecase(conversations, messages, notifications, ai.NewFallbackGenerator(), testLogger())
	return conversations, messages, notifications, uc
}

func TestStartConversation(t *testing.T) {
	conversations, messages, notifications, uc := chatTestUsecase()

	conversations.On("Create", mock.Anything, mock.MatchedBy(func(c model.Conversation) bool {
		return c.SellerID == 20 && c.Status == model.ConversationStatusOpen && c.Source == "website"
	})).Return(model.Conversation{ID: 1, SellerID: 20, CustomerEmail: "kofi@example.com", Status: model.ConversationStatusOpen}, nil)
	messages.On("Create", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
		return m.ConversationID == 1 && m.Sender == model.MessageSenderCustomer && m.Content == "Is this available?"
	})).Return(model.Message{ID: 1}, nil)
	conversations.On("TouchLastMessage", mock.Anything, int64(1)).Return(nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return n.UserID == 20 && n.Type == model.NotificationNewMessage
	})).Return(nil)

	conv, err := uc.StartConversation(context.Background(), 20, StartConversationInput{
		CustomerEmail: "kofi@example.com",
		CustomerName:  "Kofi",
		Message:       "Is this available?",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), conv.ID)
}

// 売り手への通知失敗で会話作成は失敗しない
func TestStartConversation_NotifyFailureIgnored(t *testing.T) {
	conversations, messages, notifications, uc := chatTestUsecase()

	conversations.On("Create", mock.Anything, mock.Anything).
		Return(model.Conversation{ID: 1, SellerID: 20}, nil)
	messages.On("Create", mock.Anything, mock.Anything).Return(model.Message{ID: 1}, nil)
	conversations.On("TouchLastMessage", mock.Anything, int64(1)).Return(nil)
	notifications.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := uc.StartConversation(context.Background(), 20, StartConversationInput{
		CustomerEmail: "kofi@example.com", Message: "hi",
	})
	require.NoError(t, err)
}

func TestListMessages_MarksCustomerMessagesRead(t *testing.T) {
	conversations, messages, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(1)).Return(model.Conversation{
		ID: 1, SellerID: 20, Status: model.ConversationStatusOpen,
	}, nil)
	messages.On("ListByConversationID", mock.Anything, int64(1)).Return([]model.Message{
		{ID: 1, ConversationID: 1, Sender: model.MessageSenderCustomer, Content: "hi"},
	}, nil)
	messages.On("MarkRead", mock.Anything, int64(1), model.MessageSenderCustomer).Return(nil)

	got, err := uc.ListMessages(context.Background(), 20, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	messages.AssertCalled(t, "MarkRead", mock.Anything, int64(1), model.MessageSenderCustomer)
}

func TestSendMessage_ClosedConversationRejected(t *testing.T) {
	conversations, messages, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(1)).Return(model.Conversation{
		ID: 1, SellerID: 20, Status: model.ConversationStatusClosed,
	}, nil)

	_, err := uc.SendMessage(context.Background(), 20, 1, SendMessageInput{Content: "hello"})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid transition", he.Message)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessage_OtherSellersThreadIsNotFound(t *testing.T) {
	conversations, _, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(1)).Return(model.Conversation{
		ID: 1, SellerID: 20,
	}, nil)

	_, err := uc.SendMessage(context.Background(), 99, 1, SendMessageInput{Content: "hello"})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestUpdateConversationStatus_Whitelist(t *testing.T) {
	conversations, _, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(1)).Return(model.Conversation{
		ID: 1, SellerID: 20, Status: model.ConversationStatusOpen,
	}, nil)
	conversations.On("UpdateStatus", mock.Anything, int64(1), model.ConversationStatusClosed).Return(nil)

	conv, err := uc.UpdateStatus(context.Background(), 20, 1, "closed")
	require.NoError(t, err)
	assert.Equal(t, model.ConversationStatusClosed, conv.Status)

	_, err = uc.UpdateStatus(context.Background(), 20, 1, "spam")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestSuggestReply(t *testing.T) {
	conversations, messages, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(1)).Return(model.Conversation{
		ID: 1, SellerID: 20, Status: model.ConversationStatusOpen,
	}, nil)
	messages.On("ListByConversationID", mock.Anything, int64(1)).Return([]model.Message{
		{ID: 1, ConversationID: 1, Sender: model.MessageSenderCustomer, Content: "Do you ship to Kumasi?"},
	}, nil)

	out, err := uc.SuggestReply(context.Background(), 20, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Suggestion)
}

func TestSuggestReply_NotFoundConversation(t *testing.T) {
	conversations, _, _, uc := chatTestUsecase()

	conversations.On("FindByID", mock.Anything, int64(9)).Return(model.Conversation{}, repo.ErrNotFound)

	_, err := uc.SuggestReply(context.Background(), 20, 9)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
