package chat

import (
	"context"

	"github.com/iyunix/chat-api/internal/domain"
)

// ChatRepository handles chat data operations.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// Delete removes the chat and, through the foreign key, its messages.
	// It reports whether a row was removed.
	Delete(ctx context.Context, id uint) (bool, error)
	CountTotalChats(ctx context.Context) (int64, error)
}
