// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"

	"github.com/iyunix/chat-api/internal/domain"
	"github.com/iyunix/chat-api/internal/logger"
	"github.com/iyunix/chat-api/internal/repository"
	"github.com/iyunix/chat-api/internal/repository/chat"
	chatservice "github.com/iyunix/chat-api/internal/services/chat"
	"github.com/iyunix/chat-api/internal/validation"
)

// ChatService implements the chat use cases. Each call runs in its own
// transaction and returns only *chatservice.ChatError values.
type ChatService struct {
	config *chatservice.Config
	uow    repository.UnitOfWork
	logger logger.Logger
}

var _ chatservice.Service = (*ChatService)(nil)

func NewChatService(uow repository.UnitOfWork, config *chatservice.Config, log logger.Logger) (*ChatService, error) {
	if uow == nil {
		return nil, errors.New("unit of work is required")
	}
	if config == nil {
		config = chatservice.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = &logger.NoOpLogger{}
	}

	return &ChatService{config: config, uow: uow, logger: log}, nil
}

func (s *ChatService) CreateChat(ctx context.Context, title string) (*domain.Chat, error) {
	const op = "CreateChat"

	cleanTitle, err := validation.ValidateTitle(title)
	if err != nil {
		return nil, chatservice.NewValidationError(op, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var created *domain.Chat
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		c, err := repos.Chats.Create(ctx, &domain.Chat{Title: cleanTitle})
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, s.storeError(op, 0, err)
	}

	s.logger.Info("Chat created", "chat_id", created.ID)
	return created, nil
}

func (s *ChatService) CreateMessage(ctx context.Context, chatID uint, text string) (*domain.Message, error) {
	const op = "CreateMessage"

	// Input is checked before the chat lookup, so a bad text on a missing
	// chat is reported as a validation error.
	cleanText, err := validation.ValidateText(text)
	if err != nil {
		return nil, chatservice.NewValidationError(op, err)
	}
	if chatID == 0 {
		return nil, chatservice.NewNotFoundError(op, chatID)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var created *domain.Message
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Chats.ExistsByID(ctx, chatID)
		if err != nil {
			return err
		}
		if !exists {
			return chat.ErrChatNotFound
		}

		m, err := repos.Messages.Create(ctx, &domain.Message{ChatID: chatID, Text: cleanText})
		if err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, s.storeError(op, chatID, err)
	}

	s.logger.Debug("Message created", "chat_id", chatID, "message_id", created.ID)
	return created, nil
}

// GetChatWithMessages loads the chat and one page of its messages, newest first.
func (s *ChatService) GetChatWithMessages(ctx context.Context, chatID uint, page chatservice.Page) (*domain.Chat, error) {
	const op = "GetChatWithMessages"

	if err := validation.ValidatePage(page.Limit, page.Offset, s.config.MaxPageLimit); err != nil {
		return nil, chatservice.NewValidationError(op, err)
	}
	if chatID == 0 {
		return nil, chatservice.NewNotFoundError(op, chatID)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Chat
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		c, err := repos.Chats.FindByID(ctx, chatID)
		if err != nil {
			return err
		}
		messages, err := repos.Messages.FindByChatIDWithPagination(ctx, chatID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		c.Messages = messages
		result = c
		return nil
	})
	if err != nil {
		return nil, s.storeError(op, chatID, err)
	}
	return result, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, chatID uint) (bool, error) {
	const op = "DeleteChat"

	if chatID == 0 {
		return false, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var deleted bool
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		ok, err := repos.Chats.Delete(ctx, chatID)
		deleted = ok
		return err
	})
	if err != nil {
		return false, s.storeError(op, chatID, err)
	}

	if deleted {
		s.logger.Info("Chat deleted", "chat_id", chatID)
	}
	return deleted, nil
}

func (s *ChatService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.Timeout)
}

// storeError turns a failed transaction into a ChatError.
func (s *ChatService) storeError(op string, chatID uint, err error) error {
	if errors.Is(err, chat.ErrChatNotFound) {
		return chatservice.NewNotFoundError(op, chatID)
	}
	s.logger.Error("Store operation failed", "operation", op, "chat_id", chatID, "error", err)
	return chatservice.NewStoreError(op, err)
}
