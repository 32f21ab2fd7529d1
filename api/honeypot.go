package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/session"
)

// HoneypotMessage is the handoff endpoint upstream platforms call with one
// suspected-scammer message per request. The caller's session ID doubles as
// the conversation ID, so repeat calls continue the same session.
// POST /api/honeypot/message
func (h *Handler) HoneypotMessage(c echo.Context) error {
	ctx := c.Request().Context()

	apiKeyValid := h.config.HoneypotAPIKey != "" && c.Request().Header.Get("x-api-key") == h.config.HoneypotAPIKey
	if h.config.HoneypotAPIKey != "" && !apiKeyValid {
		return c.JSON(http.StatusUnauthorized, domain.HoneypotResponse{Status: "error"})
	}

	var req domain.HoneypotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.HoneypotResponse{Status: "error"})
	}
	if req.SessionID == "" || req.Message.Text == "" {
		return c.JSON(http.StatusBadRequest, domain.HoneypotResponse{Status: "error"})
	}

	if err := h.ensureConversation(c, req); err != nil {
		log.Printf("ERROR: failed to ensure conversation %s: %v", req.SessionID, err)
		return c.JSON(http.StatusInternalServerError, domain.HoneypotResponse{Status: "error"})
	}

	sender := domain.Sender(req.Message.Sender)
	if sender != domain.SenderAgent {
		sender = domain.SenderScammer
	}

	result, err := h.manager.HandleTurn(ctx, req.SessionID, sender, req.Message.Text, true)
	if err != nil {
		if errors.Is(err, session.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, domain.HoneypotResponse{Status: "error"})
		}
		log.Printf("ERROR: honeypot turn failed for %s: %v", req.SessionID, err)
		return c.JSON(http.StatusInternalServerError, domain.HoneypotResponse{Status: "error"})
	}

	var reply string
	if result.Reply != nil {
		reply = result.Reply.Content
	}
	return c.JSON(http.StatusOK, domain.HoneypotResponse{
		Status: "success",
		Reply:  reply,
	})
}

// ensureConversation creates the backing conversation record on the first
// handoff for a session.
func (h *Handler) ensureConversation(c echo.Context, req domain.HoneypotRequest) error {
	ctx := c.Request().Context()

	conv, err := h.store.GetConversation(ctx, req.SessionID)
	if err != nil {
		return err
	}
	if conv != nil {
		return nil
	}

	title := "Honeypot session " + req.SessionID
	if req.Metadata.Channel != "" {
		title = "Honeypot session via " + req.Metadata.Channel
	}
	return h.store.CreateConversation(ctx, &domain.Conversation{
		ConversationID: req.SessionID,
		Title:          title,
		Status:         domain.ConversationActive,
		CreatedAt:      time.Now(),
	})
}
