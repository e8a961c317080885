// File: internal/dtos/chat.go
package dtos

import (
	"time"

	"github.com/iyunix/chat-api/internal/domain"
)

// ChatCreateRequestDTO is the payload of POST /chats. Title is a pointer so a
// missing field can be told apart from an empty one.
type ChatCreateRequestDTO struct {
	Title *string `json:"title" validate:"required"`
}

// MessageCreateRequestDTO is the payload of POST /chats/{id}/messages.
type MessageCreateRequestDTO struct {
	Text *string `json:"text" validate:"required"`
}

type ChatResponseDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponseDTO struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chat_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatWithMessagesResponseDTO always serialises messages as a list, never null.
type ChatWithMessagesResponseDTO struct {
	ID        uint                 `json:"id"`
	Title     string               `json:"title"`
	CreatedAt time.Time            `json:"created_at"`
	Messages  []MessageResponseDTO `json:"messages"`
}

// ErrorResponseDTO carries either a message string or a list of validation details.
type ErrorResponseDTO struct {
	Detail any `json:"detail"`
}

type HealthResponseDTO struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func ToChatResponse(c *domain.Chat) ChatResponseDTO {
	return ChatResponseDTO{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt.UTC()}
}

func ToMessageResponse(m *domain.Message) MessageResponseDTO {
	return MessageResponseDTO{ID: m.ID, ChatID: m.ChatID, Text: m.Text, CreatedAt: m.CreatedAt.UTC()}
}

func ToChatWithMessagesResponse(c *domain.Chat) ChatWithMessagesResponseDTO {
	messages := make([]MessageResponseDTO, 0, len(c.Messages))
	for i := range c.Messages {
		messages = append(messages, ToMessageResponse(&c.Messages[i]))
	}
	return ChatWithMessagesResponseDTO{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt.UTC(),
		Messages:  messages,
	}
}
