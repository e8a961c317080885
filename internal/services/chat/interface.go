// File: internal/services/chat/interface.go
package chat

import (
	"context"

	"github.com/iyunix/chat-api/internal/domain"
)

// Service is the set of chat use cases. Every error it returns is a *ChatError.
type Service interface {
	CreateChat(ctx context.Context, title string) (*domain.Chat, error)
	CreateMessage(ctx context.Context, chatID uint, text string) (*domain.Message, error)
	GetChatWithMessages(ctx context.Context, chatID uint, page Page) (*domain.Chat, error)
	// DeleteChat reports false when there was no chat to delete.
	DeleteChat(ctx context.Context, chatID uint) (bool, error)
}
