package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/session"
	"github.com/scamtrap/honeypot/store"
)

// ListConversations returns all conversations, most recent first, with their
// live risk-derived scam score.
// GET /api/conversations
func (h *Handler) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()

	conversations, err := h.store.ListConversations(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list conversations: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list conversations"})
	}

	for i := range conversations {
		score, _, rerr := h.manager.RiskScore(ctx, conversations[i].ConversationID)
		if rerr != nil {
			continue
		}
		conversations[i].ScamScore = int(score * 100)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": conversations,
	})
}

type createConversationRequest struct {
	Title       string `json:"title"`
	ScammerName string `json:"scammer_name"`
}

// CreateConversation creates a new tracked conversation.
// POST /api/conversations
func (h *Handler) CreateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	var req createConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	conv := &domain.Conversation{
		ConversationID: "conv_" + uuid.New().String()[:8],
		Title:          req.Title,
		Status:         domain.ConversationActive,
		ScammerName:    req.ScammerName,
		CreatedAt:      time.Now(),
	}
	if err := h.store.CreateConversation(ctx, conv); err != nil {
		log.Printf("ERROR: failed to create conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create conversation"})
	}

	return c.JSON(http.StatusCreated, conv)
}

// GetConversation returns one conversation with its live scam score.
// GET /api/conversations/:id
func (h *Handler) GetConversation(c echo.Context) error {
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

	if score, _, rerr := h.manager.RiskScore(ctx, conversationID); rerr == nil {
		conv.ScamScore = int(score * 100)
	}

	return c.JSON(http.StatusOK, conv)
}

type updateConversationRequest struct {
	Title       *string `json:"title"`
	Status      *string `json:"status"`
	ScammerName *string `json:"scammer_name"`
}

// UpdateConversation applies a partial update to a conversation.
// PATCH /api/conversations/:id
func (h *Handler) UpdateConversation(c echo.Context) error {
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

	var req updateConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	update := store.ConversationUpdate{
		Title:       req.Title,
		ScammerName: req.ScammerName,
	}
	if req.Status != nil {
		status := domain.ConversationStatus(*req.Status)
		if status != domain.ConversationActive && status != domain.ConversationClosed {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid status"})
		}
		update.Status = &status
	}

	if err := h.store.UpdateConversation(ctx, conversationID, update); err != nil {
		log.Printf("ERROR: failed to update conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update conversation"})
	}

	updated, err := h.store.GetConversation(ctx, conversationID)
	if err != nil {
		log.Printf("ERROR: failed to reload conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get conversation"})
	}
	return c.JSON(http.StatusOK, updated)
}

// GetState returns the full read-only conversation state.
// GET /api/conversations/:id/state
func (h *Handler) GetState(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	snap, err := h.manager.Snapshot(ctx, conversationID)
	if err != nil {
		if errors.Is(err, session.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
		}
		log.Printf("ERROR: failed to build state snapshot: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get state"})
	}

	return c.JSON(http.StatusOK, snap)
}

// ResumeAgent clears a paused agent and has it speak next.
// POST /api/conversations/:id/resume
func (h *Handler) ResumeAgent(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	msg, err := h.manager.Resume(ctx, conversationID)
	if err != nil {
		if errors.Is(err, session.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
		}
		log.Printf("ERROR: failed to resume agent: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to resume agent"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": msg,
	})
}

// PauseAgent stops the agent from responding until resumed.
// POST /api/conversations/:id/pause
func (h *Handler) PauseAgent(c echo.Context) error {
	ctx := c.Request().Context()
	conversationID := c.Param("id")

	if err := h.manager.Pause(ctx, conversationID); err != nil {
		if errors.Is(err, session.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
		}
		log.Printf("ERROR: failed to pause agent: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to pause agent"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "paused"})
}
