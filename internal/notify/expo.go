package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/sony/gobreaker"
)

// TokenSource resolves registered push tokens for staff members.
type TokenSource interface {
	PushTokensByRoles(ctx context.Context, roles []domain.Role) ([]string, error)
	PushTokensByIDs(ctx context.Context, actorIDs []string) ([]string, error)
}

// pushMessage is the Expo push API request body.
type pushMessage struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ExpoSink delivers notifications through the Expo push API, one request per
// registered device token. Calls to the API go through a circuit breaker so a
// broken push service cannot pile up slow requests behind task operations.
type ExpoSink struct {
	tokens  TokenSource
	pushURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewExpoSink creates a new ExpoSink.
func NewExpoSink(tokens TokenSource, pushURL string) *ExpoSink {
	return &ExpoSink{
		tokens:  tokens,
		pushURL: pushURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "expo-push",
			MaxRequests: 3,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}),
	}
}

// NotifyRoles pushes to every device registered by staff holding one of the roles.
func (s *ExpoSink) NotifyRoles(ctx context.Context, roles []domain.Role, title, body string) error {
	tokens, err := s.tokens.PushTokensByRoles(ctx, roles)
	if err != nil {
		return fmt.Errorf("resolve tokens by roles: %w", err)
	}
	return s.push(ctx, tokens, title, body)
}

// NotifyUsers pushes to every device registered by the given staff members.
func (s *ExpoSink) NotifyUsers(ctx context.Context, userIDs []string, title, body string) error {
	tokens, err := s.tokens.PushTokensByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("resolve tokens by ids: %w", err)
	}
	return s.push(ctx, tokens, title, body)
}

// push sends one request per token. The first failure aborts the batch; the
// dispatcher logs and drops the error either way.
func (s *ExpoSink) push(ctx context.Context, tokens []string, title, body string) error {
	for _, token := range tokens {
		payload, err := json.Marshal(pushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
		})
		if err != nil {
			return fmt.Errorf("marshal push message: %w", err)
		}

		_, err = s.breaker.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.pushURL, bytes.NewReader(payload))
			if err != nil {
				return nil, fmt.Errorf("build push request: %w", err)
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")

			resp, err := s.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("send push request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusBadRequest {
				return nil, fmt.Errorf("push service returned status %d", resp.StatusCode)
			}
			return nil, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
