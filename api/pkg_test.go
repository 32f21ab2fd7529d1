package api

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scamtrap/honeypot/agent"
	"github.com/scamtrap/honeypot/config"
	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/policy"
	"github.com/scamtrap/honeypot/report"
	"github.com/scamtrap/honeypot/session"
	"github.com/scamtrap/honeypot/tests/helpers"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	st := helpers.NewTestSQLiteStore(t)
	eng, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to build policy engine: %v", err)
	}
	synth := agent.NewTemplatedSynthesizer(rand.New(rand.NewSource(1)))
	manager := session.NewManager(st, synth, eng, report.NewClient("", time.Second))

	return NewHandler(st, manager, &config.Config{
		HoneypotAPIKey: "test-key",
	})
}

func postMessage(t *testing.T, e *echo.Echo, h *Handler, conversationID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/conversations/"+conversationID+"/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(conversationID)

	if err := h.CreateMessage(c); err != nil {
		t.Fatalf("CreateMessage handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return rec
}

func seedConversation(t *testing.T, h *Handler, id string) {
	t.Helper()
	err := h.store.CreateConversation(context.Background(), &domain.Conversation{
		ConversationID: id,
		Title:          "Suspected scam",
		Status:         domain.ConversationActive,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed conversation: %v", err)
	}
}
