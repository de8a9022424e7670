package database

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/logging"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// Listener holds a dedicated connection LISTENing on the store's change
// channel and fans row-level change events out to subscribers. The ingestion
// side publishes JSON payloads of the form
// {"event":"INSERT","table":"incoming_leads","new":{...}} via NOTIFY triggers.
//
// Events arriving while the connection is down are lost; consumers only use
// them for cache invalidation and notifications, and caches re-warm on the
// next read, so a gap degrades freshness rather than correctness.
type Listener struct {
	connString string
	channel    string
	maxBackoff time.Duration
	logger     *zap.Logger

	mu     sync.Mutex
	subs   map[int]chan models.ChangeEvent
	nextID int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a change-stream listener. Call Start to begin receiving.
func NewListener(connString, channel string, maxBackoff time.Duration, logger *zap.Logger) *Listener {
	return &Listener{
		connString: connString,
		channel:    channel,
		maxBackoff: maxBackoff,
		logger:     logger.Named("change-listener"),
		subs:       make(map[int]chan models.ChangeEvent),
	}
}

// Subscribe registers a consumer of change events. The returned cancel
// function must be called when the consumer is torn down; it closes the
// channel and releases the subscription.
func (l *Listener) Subscribe(buffer int) (<-chan models.ChangeEvent, func()) {
	ch := make(chan models.ChangeEvent, buffer)

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Start launches the listen loop. It reconnects with exponential backoff on
// connection failure and runs until Stop is called or ctx is cancelled.
func (l *Listener) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		l.run(ctx)
	}()
}

// Stop terminates the listen loop and waits for it to exit.
func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
		<-l.done
	}
}

func (l *Listener) run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = l.maxBackoff
	bo.MaxElapsedTime = 0 // retry forever

	for {
		if ctx.Err() != nil {
			return
		}

		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			wait := bo.NextBackOff()
			l.logger.Warn("Change listener disconnected, reconnecting",
				zap.String("channel", l.channel),
				zap.Duration("retry_in", wait),
				zap.String("error", logging.SanitizeError(err)))
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		bo.Reset()
	}
}

// listen opens a dedicated connection, issues LISTEN and blocks delivering
// notifications until the connection or context fails.
func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}

	l.logger.Info("Listening for change events", zap.String("channel", l.channel))

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event models.ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			l.logger.Warn("Dropping malformed change event payload",
				zap.String("payload", notification.Payload),
				zap.Error(err))
			continue
		}

		l.publish(event)
	}
}

// publish delivers an event to every subscriber without blocking. A consumer
// that cannot keep up loses events; its cache simply stays stale until the
// next invalidating event or read.
func (l *Listener) publish(event models.ChangeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ch := range l.subs {
		select {
		case ch <- event:
		default:
			l.logger.Warn("Subscriber channel full, dropping change event",
				zap.String("table", event.Table),
				zap.String("event", event.Event))
		}
	}
}
