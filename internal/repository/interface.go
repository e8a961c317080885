// File: internal/repository/interface.go
package repository

import (
	"context"

	"github.com/iyunix/chat-api/internal/repository/chat"
	"github.com/iyunix/chat-api/internal/repository/message"
)

// Repositories is the set of stores bound to a single transaction.
type Repositories struct {
	Chats    chat.ChatRepository
	Messages message.MessageRepository
}

// UnitOfWork runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back on an error or a panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
