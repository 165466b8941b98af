package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"
)

// package-level logger for pkg/ollama; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/ollama. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client is a thin wrapper around the Ollama API client. It adds a per-call
// timeout and nothing else; callers own any fallback behavior.
type Client struct {
	api     *api.Client
	client  *http.Client
	timeout time.Duration
	closed  int32 // atomic flag for Close()
}

// NewClient creates a new Ollama client wrapper.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		api:     api.NewClient(u, httpClient),
		client:  httpClient,
		timeout: timeout,
	}
	logger.Info("ollama: client created", slog.String("base_url", baseURL), slog.Duration("timeout", timeout))
	return c, nil
}

// Generate sends a prompt to the model and returns the concatenated response
// text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var sb strings.Builder
	req := &api.GenerateRequest{Model: model, Prompt: prompt}
	err := c.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	return sb.String(), nil
}

// Health checks that the Ollama instance is reachable.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.api.Heartbeat(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Close releases idle connections held by the underlying HTTP transport.
// Close is idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}
