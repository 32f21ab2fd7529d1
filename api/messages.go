package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/session"
)

// GetMessages returns the full transcript for a conversation, oldest first.
// GET /api/conversations/:id/messages
func (h *Handler) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	conv, err := h.store.GetConversation(ctx, conversationID)
	if err != nil {
		log.Printf("ERROR: failed to get conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get conversation"})
	}
	if conv == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	messages, err := h.store.GetMessages(ctx, conversationID)
	if err != nil {
		log.Printf("ERROR: failed to get messages: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get messages"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// createMessageRequest tolerates the payload shapes senders actually use:
// the message body may arrive as content, message or text, and the
// conversation ID may ride in the body instead of the path.
type createMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Sender         string `json:"sender"`
	Content        string `json:"content"`
	Message        string `json:"message"`
	Text           string `json:"text"`
}

func (r createMessageRequest) body() string {
	if r.Content != "" {
		return r.Content
	}
	if r.Message != "" {
		return r.Message
	}
	return r.Text
}

// CreateMessage records one inbound message and runs a full decoy turn.
// POST /api/conversations/:id/messages
func (h *Handler) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if conversationID == "" {
		conversationID = req.ConversationID
	}
	if req.body() == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message content is required"})
	}

	sender := domain.Sender(req.Sender)
	if sender == "" {
		sender = domain.SenderScammer
	}
	if sender != domain.SenderScammer && sender != domain.SenderAgent {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid sender"})
	}

	result, err := h.manager.HandleTurn(ctx, conversationID, sender, req.body(), false)
	if err != nil {
		if errors.Is(err, session.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
		}
		log.Printf("ERROR: failed to handle message: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to handle message"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":          result.Message,
		"agent_response":   result.Reply,
		"extracted_intel":  result.Intel,
		"confidence_score": result.Confidence,
		"ui_state":         result.UIState,
	})
}

// ClearMessages deletes the transcript of a conversation. The conversation
// record and collected intelligence are kept.
// POST /api/conversations/:id/clear
func (h *Handler) ClearMessages(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	conv, err := h.store.GetConversation(ctx, conversationID)
	if err != nil {
		log.Printf("ERROR: failed to get conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get conversation"})
	}
	if conv == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	if err := h.store.ClearConversationMessages(ctx, conversationID); err != nil {
		log.Printf("ERROR: failed to clear messages: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear messages"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
