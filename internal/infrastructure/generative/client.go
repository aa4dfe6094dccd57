// Package generative wraps the text and image generation providers behind a
// small interface. Every call is bounded by Config.Timeout and every provider
// failure is reported as ErrUnavailable.
package generative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/infrastructure/metrics"
)

// ErrUnavailable covers transport errors, timeouts, rate limiting, provider
// 5xx and empty responses.
var ErrUnavailable = errors.New("generation unavailable")

// Client generates text and base64-encoded images.
type Client interface {
	Chat(ctx context.Context, prompt string) (string, error)
	Image(ctx context.Context, prompt string) (string, error)
}

// Chatter is implemented by text providers.
type Chatter interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Imager is implemented by image providers.
type Imager interface {
	Image(ctx context.Context, prompt string) (string, error)
}

// Config is injected at construction; nothing in this package reads the environment.
type Config struct {
	ChatProvider    string // openai, anthropic
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	ChatModel       string
	ImageModel      string
	ImageSize       string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

const defaultTimeout = 90 * time.Second

// New builds the configured provider client. Images always come from OpenAI.
func New(cfg Config, m *metrics.Metrics) (*Provider, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	openai := NewOpenAIClient(cfg, nil)

	var chat Chatter = openai
	switch cfg.ChatProvider {
	case "", "openai":
	case "anthropic":
		chat = NewAnthropicClient(cfg, nil)
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.ChatProvider)
	}

	return NewProvider(chat, openai, cfg.Timeout, m), nil
}

// Provider composes a chat and an image backend and enforces the per-call
// deadline and error mapping.
type Provider struct {
	chat    Chatter
	image   Imager
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewProvider(chat Chatter, image Imager, timeout time.Duration, m *metrics.Metrics) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{chat: chat, image: image, timeout: timeout, metrics: m}
}

func (p *Provider) Chat(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.chat.Chat(ctx, prompt)
	if err == nil && text == "" {
		err = errors.New("empty completion")
	}
	p.metrics.ObserveProviderCall("chat", started, err)
	if err != nil {
		return "", unavailable("chat", err)
	}
	return text, nil
}

func (p *Provider) Image(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	b64, err := p.image.Image(ctx, prompt)
	if err == nil && b64 == "" {
		err = errors.New("empty image payload")
	}
	p.metrics.ObserveProviderCall("image", started, err)
	if err != nil {
		return "", unavailable("image", err)
	}
	return b64, nil
}

// unavailable flattens the provider error into text so SDK error types
// never escape this package.
func unavailable(op string, err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
