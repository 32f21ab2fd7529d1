package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/llm"
)

func completionBody(content string) string {
	data, _ := json.Marshal(map[string]interface{}{
		"id":      "c1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]interface{}{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	})
	return string(data)
}

func newDelegated(serverURL string) *DelegatedSynthesizer {
	client := llm.NewClient(serverURL, "test-key", "test-model", time.Second)
	return NewDelegatedSynthesizer(client, 0)
}

func TestDelegatedSynthesizeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`{"reply":"Which UPI id beta?","current_goal":"ASK_UPI_DETAILS","emotional_state":"Anxious","perceived_risk":0.6}`))
	}))
	defer server.Close()

	s := newDelegated(server.URL)
	reply, err := s.Synthesize(context.Background(), domain.GoalAskUPIDetails, TurnContext{})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if reply.Content != "Which UPI id beta?" {
		t.Fatalf("unexpected reply: %q", reply.Content)
	}
	if reply.Metadata.CurrentGoal != domain.GoalAskUPIDetails || reply.Metadata.PerceivedRisk != 0.6 {
		t.Fatalf("unexpected metadata: %+v", reply.Metadata)
	}
}

func TestDelegatedSynthesizeMissingCredential(t *testing.T) {
	client := llm.NewClient("http://localhost:0", "", "test-model", time.Second)
	s := NewDelegatedSynthesizer(client, 0)

	_, err := s.Synthesize(context.Background(), domain.GoalEngageAndStall, TurnContext{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestDelegatedSynthesizeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`{"current_goal":"ASK_UPI_DETAILS"}`))
	}))
	defer server.Close()

	s := newDelegated(server.URL)
	_, err := s.Synthesize(context.Background(), domain.GoalAskUPIDetails, TurnContext{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestDelegatedSynthesizeRepetitionRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(w, completionBody(`{"reply":"UPI id batao beta..."}`))
			return
		}
		fmt.Fprint(w, completionBody(`{"reply":"Where to send? Tell UPI."}`))
	}))
	defer server.Close()

	history := []domain.Message{
		{Sender: domain.SenderScammer, Content: "pay now"},
		{Sender: domain.SenderAgent, Content: "UPI id batao beta..."},
	}

	s := newDelegated(server.URL)
	reply, err := s.Synthesize(context.Background(), domain.GoalAskUPIDetails, TurnContext{History: history})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one corrective retry, got %d calls", calls)
	}
	if reply.Content != "Where to send? Tell UPI." {
		t.Fatalf("unexpected reply: %q", reply.Content)
	}
}

func TestDelegatedSynthesizeRegenerationFailed(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(w, completionBody(`{"reply":"UPI id batao beta..."}`))
			return
		}
		fmt.Fprint(w, completionBody(`{"reply":""}`))
	}))
	defer server.Close()

	history := []domain.Message{
		{Sender: domain.SenderAgent, Content: "UPI id batao beta..."},
	}

	s := newDelegated(server.URL)
	_, err := s.Synthesize(context.Background(), domain.GoalAskUPIDetails, TurnContext{History: history})
	if !errors.Is(err, ErrRegenerationFailed) {
		t.Fatalf("expected ErrRegenerationFailed, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls)
	}
}

func TestDelegatedSynthesizeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody(`{"reply":"late"}`))
	}))
	defer server.Close()

	client := llm.NewClient(server.URL, "test-key", "test-model", 20*time.Millisecond)
	s := NewDelegatedSynthesizer(client, 0)

	_, err := s.Synthesize(context.Background(), domain.GoalEngageAndStall, TurnContext{})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}
