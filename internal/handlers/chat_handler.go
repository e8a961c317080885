// File: internal/handlers/chat_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iyunix/chat-api/internal/dtos"
	"github.com/iyunix/chat-api/internal/logger"
	"github.com/iyunix/chat-api/internal/middleware"
	chatservice "github.com/iyunix/chat-api/internal/services/chat"
	"github.com/iyunix/chat-api/internal/validation"
)

const chatIDVar = "chat_id"

type ChatHandler struct {
	ChatService chatservice.Service
	config      chatservice.Config
	logger      logger.Logger
}

func NewChatHandler(cs chatservice.Service, cfg *chatservice.Config, log logger.Logger) (*ChatHandler, error) {
	if cs == nil {
		return nil, errors.New("chat service is required")
	}
	if cfg == nil {
		cfg = chatservice.DefaultConfig()
	}
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &ChatHandler{ChatService: cs, config: *cfg, logger: log}, nil
}

// CreateChat handles POST /chats.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req dtos.ChatCreateRequestDTO
	if verr := decodeJSONBody(w, r, &req); verr != nil {
		writeValidationError(w, verr)
		return
	}

	chat, err := h.ChatService.CreateChat(r.Context(), *req.Title)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.ToChatResponse(chat))
}

// CreateMessage handles POST /chats/{chat_id}/messages. The body is
// validated before the chat is looked up.
func (h *ChatHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	rawID, verr := parseChatID(r)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	var req dtos.MessageCreateRequestDTO
	if verr := decodeJSONBody(w, r, &req); verr != nil {
		writeValidationError(w, verr)
		return
	}

	// Ids no chat can have skip the store, but a bad text still wins over not-found.
	if rawID <= 0 {
		if _, err := validation.ValidateText(*req.Text); err != nil {
			var textErr *validation.Error
			if errors.As(err, &textErr) {
				writeValidationError(w, textErr)
				return
			}
		}
	}
	chatID, ok := positiveChatID(w, rawID)
	if !ok {
		return
	}

	message, err := h.ChatService.CreateMessage(r.Context(), chatID, *req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.ToMessageResponse(message))
}

// GetChat handles GET /chats/{chat_id}?limit=&offset=.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	rawID, idErr := parseChatID(r)
	page, pageErr := h.pageFromQuery(r)
	if idErr != nil || pageErr != nil {
		writeValidationError(w, mergeErrors(idErr, pageErr))
		return
	}

	chatID, ok := positiveChatID(w, rawID)
	if !ok {
		return
	}

	chat, err := h.ChatService.GetChatWithMessages(r.Context(), chatID, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ToChatWithMessagesResponse(chat))
}

// DeleteChat handles DELETE /chats/{chat_id}.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	rawID, verr := parseChatID(r)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	chatID, ok := positiveChatID(w, rawID)
	if !ok {
		return
	}

	deleted, err := h.ChatService.DeleteChat(r.Context(), chatID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !deleted {
		writeError(w, notFoundMessage(int64(chatID)), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseChatID(r *http.Request) (int64, *validation.Error) {
	raw := mux.Vars(r)[chatIDVar]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validation.InvalidInteger("path", chatIDVar, raw)
	}
	return id, nil
}

// positiveChatID writes a 404 and reports false for ids no chat can have.
func positiveChatID(w http.ResponseWriter, id int64) (uint, bool) {
	if id <= 0 {
		writeError(w, notFoundMessage(id), http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

// mergeErrors joins the details of path and query failures into one response.
func mergeErrors(errs ...*validation.Error) *validation.Error {
	var details []validation.Detail
	for _, e := range errs {
		if e != nil {
			details = append(details, e.Details...)
		}
	}
	return validation.NewError(validation.ErrInvalidRequest, details...)
}

func (h *ChatHandler) pageFromQuery(r *http.Request) (chatservice.Page, *validation.Error) {
	page := chatservice.Page{Limit: h.config.DefaultPageLimit, Offset: 0}
	query := r.URL.Query()

	var details []validation.Detail
	parse := func(name string, dst *int) {
		if _, present := query[name]; !present {
			return
		}
		raw := query.Get(name)
		v, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, validation.InvalidInteger("query", name, raw).Details...)
			return
		}
		*dst = v
	}
	parse("limit", &page.Limit)
	parse("offset", &page.Offset)
	if len(details) > 0 {
		return page, validation.NewError(validation.ErrInvalidPage, details...)
	}

	if err := validation.ValidatePage(page.Limit, page.Offset, h.config.MaxPageLimit); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return page, verr
		}
		return page, validation.NewError(validation.ErrInvalidPage)
	}
	return page, nil
}

// writeServiceError maps a use case failure onto the HTTP contract. Store
// failures are logged in full and hidden from the client.
func (h *ChatHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var chatErr *chatservice.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Type {
		case chatservice.ErrTypeValidation:
			var verr *validation.Error
			if errors.As(chatErr, &verr) {
				writeValidationError(w, verr)
				return
			}
			writeError(w, chatErr.Message, http.StatusUnprocessableEntity)
			return
		case chatservice.ErrTypeNotFound:
			writeError(w, chatErr.Message, http.StatusNotFound)
			return
		}
	}

	h.logger.Error("Request failed with internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeError(w, "Internal server error", http.StatusInternalServerError)
}

func notFoundMessage(chatID int64) string {
	return fmt.Sprintf("Chat with id %d not found", chatID)
}
