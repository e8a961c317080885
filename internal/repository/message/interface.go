// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/iyunix/chat-api/internal/domain"
)

type MessageRepository interface {
	// Create returns chat.ErrChatNotFound when the parent chat does not exist.
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// FindByChatIDWithPagination returns one page of the chat's messages, newest first.
	FindByChatIDWithPagination(ctx context.Context, chatID uint, limit, offset int) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
	CountTotalMessages(ctx context.Context) (int64, error)
}
