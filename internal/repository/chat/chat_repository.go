// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/iyunix/chat-api/internal/domain"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create inserts the chat and fills in its ID and CreatedAt.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if chat == nil {
		return nil, errors.New("chat cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, ErrChatNotFound
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return r.handleFindError(err, &chat, "FindByID")
}

func (r *gormChatRepository) ExistsByID(ctx context.Context, chatID uint) (bool, error) {
	if chatID == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", chatID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check chat %d existence: %w", chatID, err)
	}
	return count > 0, nil
}

func (r *gormChatRepository) Delete(ctx context.Context, chatID uint) (bool, error) {
	if chatID == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).Where("id = ?", chatID).Delete(&domain.Chat{})
	if result.Error != nil {
		return false, fmt.Errorf("delete chat %d: %w", chatID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormChatRepository) CountTotalChats(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Chat{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chats: %w", err)
	}
	return count, nil
}

// handleFindError maps a missing row to ErrChatNotFound and wraps anything else.
func (r *gormChatRepository) handleFindError(err error, chat *domain.Chat, operation string) (*domain.Chat, error) {
	if err == nil {
		return chat, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}
	return nil, fmt.Errorf("%s: %w", operation, err)
}
