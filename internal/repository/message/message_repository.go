// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/iyunix/chat-api/internal/domain"
	"github.com/iyunix/chat-api/internal/repository/chat"
	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message cannot be nil")
	}
	if message.ChatID == 0 {
		return nil, chat.ErrChatNotFound
	}

	if err := r.db.WithContext(ctx).Omit("Chat").Create(message).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, chat.ErrChatNotFound
		}
		return nil, fmt.Errorf("create message in chat %d: %w", message.ChatID, err)
	}
	return message, nil
}

// FindByChatIDWithPagination loads only the requested window. Equal timestamps
// fall back to id so the order is stable between pages.
func (r *gormMessageRepository) FindByChatIDWithPagination(ctx context.Context, chatID uint, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("invalid offset %d", offset)
	}

	messages := make([]domain.Message, 0, limit)
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load messages of chat %d: %w", chatID, err)
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count messages of chat %d: %w", chatID, err)
	}
	return count, nil
}

func (r *gormMessageRepository) CountTotalMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
