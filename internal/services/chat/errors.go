// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeStore      ErrorType = "STORE"
)

// ChatError is the only error a chat use case returns. Type is one of the
// ErrType* constants and decides how the caller must react.
type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

// NewValidationError wraps a *validation.Error (or any input error).
func NewValidationError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: "invalid input", Cause: cause}
}

func NewNotFoundError(operation string, chatID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeNotFound,
		Operation: operation,
		Message:   fmt.Sprintf("Chat with id %d not found", chatID),
		ChatID:    chatID,
	}
}

func NewStoreError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStore, Operation: operation, Message: "store operation failed", Cause: cause}
}

// TypeOf reports the ChatError type carried by err, or "" when err is not a ChatError.
func TypeOf(err error) ErrorType {
	var chatErr *ChatError
	if errors.As(err, &chatErr) {
		return chatErr.Type
	}
	return ""
}

func IsNotFound(err error) bool   { return TypeOf(err) == ErrTypeNotFound }
func IsValidation(err error) bool { return TypeOf(err) == ErrTypeValidation }
func IsStore(err error) bool      { return TypeOf(err) == ErrTypeStore }
