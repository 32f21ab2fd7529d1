package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetScamReports returns the provenance records for every intelligence item
// captured in a conversation, oldest first.
// GET /api/conversations/:id/reports
func (h *Handler) GetScamReports(c echo.Context) error {
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

	reports, err := h.store.GetScamReports(ctx, conversationID)
	if err != nil {
		log.Printf("ERROR: failed to get scam reports: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get scam reports"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"reports": reports,
	})
}
