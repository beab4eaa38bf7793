package bancho

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Lekuruu/gosu/internal/packet"
)

// HTTPTransport speaks the request/response variant: every cycle is one
// POST against https://c.{server} carrying the batched queue up and a
// packet stream down. The session token travels in the osu-token header.
type HTTPTransport struct {
	client    *http.Client
	url       string
	userAgent string
	version   string
	logger    *slog.Logger

	mu    sync.Mutex
	token string
}

// NewHTTPTransport creates a transport against https://c.{server}.
func NewHTTPTransport(server, version string, logger *slog.Logger) *HTTPTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPTransport{
		client:    &http.Client{},
		url:       fmt.Sprintf("https://c.%s", server),
		userAgent: "osu!",
		version:   version,
		logger:    logger,
	}
}

func (t *HTTPTransport) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("osu-version", t.version)

	t.mu.Lock()
	if t.token != "" {
		req.Header.Set("osu-token", t.token)
	}
	t.mu.Unlock()

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

func (t *HTTPTransport) decode(resp *http.Response) ([]packet.Frame, int, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading response body: %v", ErrTransport, err)
	}

	frames, err := packet.DecodeStream(body)
	if err != nil {
		// Frames decoded before the failure are still dispatched; the
		// malformed tail is dropped.
		t.logger.Error("dropping malformed packet stream tail", "err", err)
	}
	if err := decompressFrames(frames, packet.DecompressZlib); err != nil {
		return nil, len(body), err
	}
	return frames, len(body), nil
}

// Login performs the first POST. The cho-token header carries the session
// token; its absence with HTTP 200 means the body encodes a LoginReply
// error.
func (t *HTTPTransport) Login(ctx context.Context, payload []byte) (*LoginResult, error) {
	resp, err := t.post(ctx, payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: connection refused (%d)", ErrTransport, resp.StatusCode)
	}

	token := resp.Header.Get("cho-token")
	frames, _, err := t.decode(resp)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.token = token
	t.mu.Unlock()

	return &LoginResult{Token: token, Frames: frames}, nil
}

// Cycle POSTs the batched queue and decodes the reply stream.
func (t *HTTPTransport) Cycle(ctx context.Context, outgoing []byte) (*CycleResult, error) {
	resp, err := t.post(ctx, outgoing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: connection refused (%d)", ErrTransport, resp.StatusCode)
	}

	frames, size, err := t.decode(resp)
	if err != nil {
		return nil, err
	}
	return &CycleResult{Frames: frames, BodySize: size}, nil
}

// Send is unused on the HTTP transport; outbound packets wait for the next
// cycle.
func (t *HTTPTransport) Send([]byte) error { return nil }

// Direct reports false: HTTP batches per cycle.
func (t *HTTPTransport) Direct() bool { return false }

// Close drops idle connections.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
