// Package api provides HTTP handlers for the honeypot service.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scamtrap/honeypot/config"
	"github.com/scamtrap/honeypot/session"
	"github.com/scamtrap/honeypot/store"
)

// Handler handles HTTP requests.
type Handler struct {
	store   store.Store
	manager *session.Manager
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, manager *session.Manager, config *config.Config) *Handler {
	return &Handler{
		store:   store,
		manager: manager,
		config:  config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Turn API (for upstream platforms handing off suspected scammers)
	e.POST("/api/honeypot/message", h.HoneypotMessage)

	// Conversation API
	e.GET("/api/conversations", h.ListConversations)
	e.POST("/api/conversations", h.CreateConversation)
	e.GET("/api/conversations/:id", h.GetConversation)
	e.PATCH("/api/conversations/:id", h.UpdateConversation)

	e.GET("/api/conversations/:id/messages", h.GetMessages)
	e.POST("/api/conversations/:id/messages", h.CreateMessage)
	e.POST("/api/conversations/:id/clear", h.ClearMessages)

	e.GET("/api/conversations/:id/state", h.GetState)
	e.POST("/api/conversations/:id/resume", h.ResumeAgent)
	e.POST("/api/conversations/:id/pause", h.PauseAgent)

	e.GET("/api/conversations/:id/reports", h.GetScamReports)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
