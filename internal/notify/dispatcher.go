package notify

import (
	"context"
	"log/slog"

	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/metrics"
)

// Sink delivers notifications to staff devices. Both methods are
// fire-and-forget from the controller's point of view; delivery confirmation
// is never awaited.
type Sink interface {
	NotifyRoles(ctx context.Context, roles []domain.Role, title, body string) error
	NotifyUsers(ctx context.Context, userIDs []string, title, body string) error
}

// Preferences reports whether notification delivery is globally enabled.
type Preferences interface {
	Enabled(ctx context.Context) bool
	SetEnabled(ctx context.Context, enabled bool) error
}

// Dispatcher processes notification intents produced by the services. It
// consults the persisted enabled flag before touching the sink and swallows
// every delivery error.
type Dispatcher struct {
	sink  Sink
	prefs Preferences
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(sink Sink, prefs Preferences) *Dispatcher {
	return &Dispatcher{
		sink:  sink,
		prefs: prefs,
	}
}

// Dispatch delivers the given intents. When notifications are disabled no sink
// call is made at all. Errors are logged and dropped; the task operation that
// produced the intents already succeeded.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []Intent) {
	if len(intents) == 0 {
		return
	}

	if !d.prefs.Enabled(ctx) {
		metrics.NotificationsSuppressed.Add(float64(len(intents)))
		return
	}

	for _, intent := range intents {
		var err error
		switch {
		case len(intent.Roles) > 0:
			err = d.sink.NotifyRoles(ctx, intent.Roles, intent.Title, intent.Body)
		case len(intent.UserIDs) > 0:
			err = d.sink.NotifyUsers(ctx, intent.UserIDs, intent.Title, intent.Body)
		default:
			continue
		}

		if err != nil {
			metrics.NotificationsFailed.Inc()
			slog.Error("notification delivery failed",
				"title", intent.Title,
				"error", err,
			)
			continue
		}

		metrics.NotificationsSent.Inc()
	}
}
