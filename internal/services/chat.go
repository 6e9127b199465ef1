package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	sdk "github.com/inference-gateway/sdk"
	config "github.com/xipchat/cli/config"
	domain "github.com/xipchat/cli/internal/domain"
	formatting "github.com/xipchat/cli/internal/formatting"
	logger "github.com/xipchat/cli/internal/logger"
	zap "go.uber.org/zap"
)

// GatewayChatService implements ChatService against the inference gateway
type GatewayChatService struct {
	client         sdk.Client
	systemPrompt   string
	timeoutSeconds int

	mu           sync.Mutex
	cancelActive context.CancelFunc
}

// NewGatewayChatService creates a chat service with a pre-configured client
func NewGatewayChatService(cfg config.GatewayConfig, systemPrompt string) *GatewayChatService {
	baseURL := cfg.URL
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
	}

	client := sdk.NewClient(&sdk.ClientOptions{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120
	}

	return &GatewayChatService{
		client:         client,
		systemPrompt:   systemPrompt,
		timeoutSeconds: timeout,
	}
}

// SendMessage sends the conversation to the gateway and returns the reply
func (s *GatewayChatService) SendMessage(ctx context.Context, model string, messages []sdk.Message) (*domain.ChatResponse, error) {
	if err := s.validate(model, messages); err != nil {
		return nil, err
	}

	provider, modelName, err := parseProvider(model)
	if err != nil {
		return nil, err
	}

	messages = s.addSystemPrompt(messages)

	ctx = logger.With(ctx, zap.String("model", model))

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(s.timeoutSeconds)*time.Second)
	s.setActive(cancel)
	defer func() {
		s.setActive(nil)
		cancel()
	}()

	logger.FromContext(ctx).Debug("sending chat completion",
		zap.Int("messages", len(messages)))

	start := time.Now()
	response, err := s.client.GenerateContent(timeoutCtx, sdk.Provider(provider), modelName, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("gateway returned no choices")
	}

	return &domain.ChatResponse{
		Content:  formatting.ExtractTextFromContent(response.Choices[0].Message.Content),
		Model:    model,
		Usage:    response.Usage,
		Duration: time.Since(start),
	}, nil
}

// CancelActive cancels the in-flight request, if any
func (s *GatewayChatService) CancelActive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelActive != nil {
		s.cancelActive()
	}
}

func (s *GatewayChatService) setActive(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelActive = cancel
}

func (s *GatewayChatService) validate(model string, messages []sdk.Message) error {
	if model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if len(messages) == 0 {
		return fmt.Errorf("messages cannot be empty")
	}
	return nil
}

// addSystemPrompt prepends the configured system prompt unless the
// conversation already starts with one
func (s *GatewayChatService) addSystemPrompt(messages []sdk.Message) []sdk.Message {
	if s.systemPrompt == "" {
		return messages
	}
	if len(messages) > 0 && messages[0].Role == sdk.System {
		return messages
	}

	withPrompt := make([]sdk.Message, 0, len(messages)+1)
	withPrompt = append(withPrompt, sdk.Message{
		Role:    sdk.System,
		Content: sdk.NewMessageContent(s.systemPrompt),
	})
	return append(withPrompt, messages...)
}

// parseProvider parses provider and model name from a "provider/model" string
func parseProvider(model string) (string, string, error) {
	parts := strings.SplitN(model, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid model format %q, expected 'provider/model'", model)
	}

	return parts[0], parts[1], nil
}
