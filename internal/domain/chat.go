// File: internal/domain/chat.go
package domain

import "time"

// Chat is a named conversation that owns its messages.
type Chat struct {
	ID        uint      `gorm:"primarykey"`
	Title     string    `gorm:"size:200;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chats_created_at"`

	// Messages is filled explicitly with one page by the service; GORM never loads it.
	Messages []Message `gorm:"-"`
}

func (Chat) TableName() string { return "chats" }
