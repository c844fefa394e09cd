package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"

	"github.com/goccy/go-json"
)

const (
	SignatureHeader = "X-Shipzone-Signature"
	EventHeader     = "X-Shipzone-Event"
	DeliveryHeader  = "X-Shipzone-Delivery"
)

var ErrClosed = errors.New("webhook notifier closed")

// Sign returns the hex-encoded HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Notifier posts method events to a configured HTTP endpoint
type Notifier struct {
	url        string
	secret     string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	timeout    time.Duration

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewNotifier returns nil when no endpoint is configured. A nil Notifier is a no-op.
func NewNotifier(url, secret string, timeout time.Duration) *Notifier {
	if url == "" {
		logger.Get().Info().Msg("webhook url not configured, webhook notifications disabled")
		return nil
	}
	return &Notifier{
		url:    url,
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		attempts: 3,
		backoff:  time.Second,
		timeout:  3 * timeout,
	}
}

// Envelope is the webhook request body
type Envelope struct {
	Event domain.MethodEvent `json:"event"`
	Sent  int64              `json:"sent_at"`
}

// Send delivers one event with simple retry logic
func (n *Notifier) Send(ctx context.Context, event domain.MethodEvent) error {
	if n == nil {
		return nil
	}

	body, err := json.Marshal(Envelope{Event: event, Sent: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var lastErr error
	for i := 0; i < n.attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * n.backoff):
			}
		}

		status, respBody, err := n.post(ctx, event, body)
		if err != nil {
			lastErr = fmt.Errorf("webhook request failed: %w", err)
			continue
		}
		if status >= 200 && status < 300 {
			return nil
		}

		lastErr = fmt.Errorf("webhook error (status %d): %s", status, respBody)

		// 4xx other than 429 is a permanent rejection of the payload
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			break
		}
	}

	return lastErr
}

func (n *Notifier) post(ctx context.Context, event domain.MethodEvent, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(EventHeader, string(event.Type))
	req.Header.Set(DeliveryHeader, event.ID)
	if n.secret != "" {
		req.Header.Set(SignatureHeader, "sha256="+Sign(n.secret, body))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	return resp.StatusCode, string(respBody), nil
}

func (n *Notifier) Name() string { return "webhook" }

// Handle sends the event in the background so the request that caused it is
// not held up by the remote endpoint. Close waits for these deliveries.
func (n *Notifier) Handle(ctx context.Context, event domain.MethodEvent) error {
	if n == nil {
		return nil
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	n.inflight.Add(1)
	n.mu.Unlock()

	l := logger.WithContext(ctx)
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	go func() {
		defer n.inflight.Done()
		defer cancel()
		if err := n.Send(sendCtx, event); err != nil {
			l.Warn().Err(err).Str("event_id", event.ID).Msg("webhook delivery failed")
		}
	}()
	return nil
}

// Close stops accepting events and waits for in-flight deliveries until ctx ends.
func (n *Notifier) Close(ctx context.Context) error {
	if n == nil {
		return nil
	}

	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
