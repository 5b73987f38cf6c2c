package repository

import (
	"context"
	"errors"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"gorm.io/gorm"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

func (r *ConversationGormRepository) FindByID(ctx context.Context, id int64) (model.Conversation, error) {
	var c model.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Conversation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Conversation{}, err
	}
	return c, nil
}

func (r *ConversationGormRepository) ListBySeller(ctx context.Context, sellerID int64, status string) ([]model.Conversation, error) {
	q := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []model.Conversation
	if err := q.Order("last_message_at desc").Find(&items).Error; err != nil {
		return []model.Conversation{}, err
	}
	return items, nil
}

func (r *ConversationGormRepository) Create(ctx context.Context, c model.Conversation) (model.Conversation, error) {
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Conversation{}, err
	}
	return c, nil
}

func (r *ConversationGormRepository) UpdateStatus(ctx context.Context, id int64, status model.ConversationStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ConversationGormRepository) TouchLastMessage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", time.Now()).Error
}

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) ListByConversationID(ctx context.Context, conversationID int64) ([]model.Message, error) {
	var items []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Message{}, err
	}
	return items, nil
}

func (r *MessageGormRepository) Create(ctx context.Context, m model.Message) (model.Message, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Message{}, err
	}
	return m, nil
}

// 相手側が送ったメッセージを既読にする
func (r *MessageGormRepository) MarkRead(ctx context.Context, conversationID int64, sender model.MessageSender) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND sender = ? AND is_read = ?", conversationID, sender, false).
		Update("is_read", true).Error
}
