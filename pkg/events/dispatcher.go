package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// NotificationSink receives "new lead" insert events. Implemented by
// notify.Center.
type NotificationSink interface {
	Add(leadID uuid.UUID, companyName string)
}

// Refresher re-warms an invalidated cache prefix in the background. Refresh
// failures are background failures: logged, never surfaced, the cache simply
// stays cold until the next foreground read.
type Refresher interface {
	Refresh(ctx context.Context, prefix string) error
}

// Dispatcher consumes the change stream and routes each event to the cache
// invalidation table and, for lead inserts, the notification sink. It is the
// single place that decides "who cares" about "what changed".
type Dispatcher struct {
	deps      Dependencies
	cache     *cache.Cache
	sink      NotificationSink
	refresher Refresher
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. sink and refresher may be nil.
func NewDispatcher(deps Dependencies, c *cache.Cache, sink NotificationSink, refresher Refresher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		deps:      deps,
		cache:     c,
		sink:      sink,
		refresher: refresher,
		logger:    logger.Named("event-dispatcher"),
	}
}

// Run consumes events until the channel closes or ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, events <-chan models.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			d.Handle(ctx, event)
		}
	}
}

// Handle processes a single change event: invalidate mapped cache keys first,
// then raise the notification, then kick the background re-warm. Invalidation
// precedes notification so a consumer reacting to the notification never reads
// a stale aggregate.
func (d *Dispatcher) Handle(ctx context.Context, event models.ChangeEvent) {
	prefixes := d.deps.PrefixesFor(event.Table)
	for _, prefix := range prefixes {
		d.cache.InvalidatePrefix(prefix)
	}

	d.logger.Debug("Change event processed",
		zap.String("table", event.Table),
		zap.String("event", event.Event),
		zap.Int("invalidated_prefixes", len(prefixes)))

	if d.sink != nil && event.Table == models.TableIncomingLeads && event.Event == models.ChangeEventInsert {
		d.notifyLeadInsert(event)
	}

	if d.refresher != nil {
		for _, prefix := range prefixes {
			go d.refresh(ctx, prefix)
		}
	}
}

func (d *Dispatcher) notifyLeadInsert(event models.ChangeEvent) {
	var payload models.LeadInsertPayload
	if err := json.Unmarshal(event.New, &payload); err != nil {
		d.logger.Warn("Dropping lead insert with malformed payload", zap.Error(err))
		return
	}
	leadID, err := uuid.Parse(payload.ID)
	if err != nil {
		d.logger.Warn("Dropping lead insert with invalid id",
			zap.String("id", payload.ID), zap.Error(err))
		return
	}
	d.sink.Add(leadID, payload.CompanyName)
}

// refresh re-warms one prefix. Errors are swallowed with a log line only;
// background refresh is lenient where foreground reads are strict.
func (d *Dispatcher) refresh(ctx context.Context, prefix string) {
	if err := d.refresher.Refresh(ctx, prefix); err != nil {
		d.logger.Warn("Background cache refresh failed",
			zap.String("prefix", prefix),
			zap.Error(err))
	}
}
