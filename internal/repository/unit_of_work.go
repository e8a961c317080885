// File: internal/repository/unit_of_work.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iyunix/chat-api/internal/repository/chat"
	"github.com/iyunix/chat-api/internal/repository/message"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// NewRepositories binds every repository to db, which may be a transaction.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Chats:    chat.NewChatRepository(db),
		Messages: message.NewMessageRepository(db),
	}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
