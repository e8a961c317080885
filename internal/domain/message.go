// File: internal/domain/message.go
package domain

import "time"

// Message represents a single message within a chat.
type Message struct {
	ID        uint      `gorm:"primarykey"`
	ChatID    uint      `gorm:"not null;index:idx_messages_chat_id"` // The ID of the chat this message belongs to
	Text      string    `gorm:"size:5000;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_created_at"`

	// Chat is the owning chat. Deleting it deletes the message in the same statement.
	Chat *Chat `gorm:"foreignKey:ChatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Message) TableName() string { return "messages" }
