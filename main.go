package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/scamtrap/honeypot/agent"
	"github.com/scamtrap/honeypot/api"
	"github.com/scamtrap/honeypot/config"
	"github.com/scamtrap/honeypot/domain"
	"github.com/scamtrap/honeypot/llm"
	"github.com/scamtrap/honeypot/policy"
	"github.com/scamtrap/honeypot/report"
	"github.com/scamtrap/honeypot/session"
	"github.com/scamtrap/honeypot/store"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	log.Printf("Starting honeypot service...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Pick the response strategy: delegated synthesis when an LLM credential
	// is configured, local templates otherwise.
	var synth agent.Synthesizer
	if cfg.LLMAPIKey != "" {
		llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		synth = agent.NewDelegatedSynthesizer(llmClient, cfg.TypingDelay)
		log.Printf("Response strategy: delegated (%s)", cfg.LLMModel)
	} else {
		synth = agent.NewTemplatedSynthesizer(rand.New(rand.NewSource(time.Now().UnixNano())))
		log.Printf("Response strategy: templated")
	}

	// Initialize engagement policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize report collector client
	reporter := report.NewClient(cfg.CollectorURL, cfg.CollectorTimeout)
	if reporter.Enabled() {
		log.Printf("Final report collector: %s", cfg.CollectorURL)
	}

	// Initialize session lifecycle manager
	manager := session.NewManager(db, synth, policyEngine, reporter)

	if err := seedDemoConversation(ctx, db); err != nil {
		log.Printf("WARN: failed to seed demo conversation: %v", err)
	}

	// Initialize handler
	h := api.NewHandler(db, manager, cfg)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Honeypot API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down honeypot service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Honeypot service stopped")
}

// seedDemoConversation creates a sample scam conversation on an empty
// database so the operator UI has something to show on first boot.
func seedDemoConversation(ctx context.Context, db store.Store) error {
	existing, err := db.ListConversations(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	conv := &domain.Conversation{
		ConversationID: "conv_demo",
		Title:          "IRS tax refund scam",
		Status:         domain.ConversationActive,
		ScammerName:    "IRS Agent Smith",
		CreatedAt:      time.Now(),
	}
	if err := db.CreateConversation(ctx, conv); err != nil {
		return err
	}

	msg := &domain.Message{
		MessageID:      "msg_demo_1",
		ConversationID: conv.ConversationID,
		Sender:         domain.SenderScammer,
		Content:        "This is the IRS. You have a pending tax refund of $1,250. Urgent action required: verify your bank details to receive it.",
		CreatedAt:      time.Now(),
	}
	return db.CreateMessage(ctx, msg)
}
