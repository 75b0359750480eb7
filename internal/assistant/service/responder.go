package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"wholesale_portal_backend/platform/logger"
)

const appName = "dealer_assistant"

// AgentResponder runs each chat turn through an llmagent on an in-memory session.
// The agent is built per call so its instruction carries the live catalog and cart.
type AgentResponder struct {
	llm            model.LLM
	sessionService session.Service
	log            *logger.Logger
}

// NewAgentResponder creates a responder over llm.
func NewAgentResponder(llm model.LLM, log *logger.Logger) *AgentResponder {
	return &AgentResponder{llm: llm, sessionService: session.InMemoryService(), log: log}
}

// Respond implements Responder.
func (r *AgentResponder) Respond(ctx context.Context, userID, instruction, message string) (string, error) {
	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "DealerAssistant",
		Model:       r.llm,
		Description: "Wholesale ordering assistant that answers catalog questions and builds carts",
		Instruction: instruction,
	})
	if err != nil {
		return "", fmt.Errorf("create assistant agent: %w", err)
	}
	run, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: r.sessionService,
	})
	if err != nil {
		return "", fmt.Errorf("create assistant runner: %w", err)
	}

	sessionID := uuid.New().String()
	if _, err := r.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return "", fmt.Errorf("create assistant session: %w", err)
	}
	defer func() {
		if err := r.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   appName,
			UserID:    userID,
			SessionID: sessionID,
		}); err != nil {
			r.log.Warn("assistant session cleanup failed", "error", err)
		}
	}()

	content := &genai.Content{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(message)}}
	var out strings.Builder
	for event, err := range run.Run(ctx, userID, sessionID, content, agent.RunConfig{StreamingMode: agent.StreamingModeNone}) {
		if err != nil {
			return "", fmt.Errorf("assistant run: %w", err)
		}
		if event == nil || event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			out.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

var _ Responder = (*AgentResponder)(nil)
