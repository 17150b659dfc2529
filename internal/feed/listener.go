package feed

import (
	"context"
	"encoding/json"
	"time"

	"plantstore-be/internal/cache"
	"plantstore-be/internal/logger"
	"plantstore-be/internal/metrics"
	"plantstore-be/internal/notification"
	"plantstore-be/internal/stats"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	channelOrders   = "orders_feed"
	channelProducts = "products_feed"

	dedupTTL             = time.Hour
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
)

// Listener consumes the database change channels and drives the fan-out:
// broadcast to websocket clients, record admin notifications, drop the
// cached dashboard.
type Listener struct {
	dsn           string
	hub           *Hub
	cache         *cache.Cache
	notifications notification.Service
	stats         stats.Service
}

func NewListener(dsn string, hub *Hub, c *cache.Cache, notifications notification.Service, statsSvc stats.Service) *Listener {
	return &Listener{
		dsn:           dsn,
		hub:           hub,
		cache:         c,
		notifications: notifications,
		stats:         statsSvc,
	}
}

// Run blocks until ctx is cancelled. Connection loss is handled by
// pq.Listener's internal reconnect loop.
func (l *Listener) Run(ctx context.Context) error {
	log := logger.L().With(zap.String("layer", "feed"))

	pl := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn("listener connection event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})
	defer pl.Close()

	for _, ch := range []string{channelOrders, channelProducts} {
		if err := pl.Listen(ch); err != nil {
			return err
		}
	}
	log.Info("change feed listening", zap.Strings("channels", []string{channelOrders, channelProducts}))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-pl.Notify:
			if n == nil {
				// nil marks a reconnect; events in between are lost,
				// consumers refetch on reconnect notice
				continue
			}
			l.handle(ctx, n.Extra)
		case <-time.After(90 * time.Second):
			go func() {
				_ = pl.Ping()
			}()
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	log := logger.L().With(zap.String("layer", "feed"))

	e, err := parseEvent(payload)
	if err != nil {
		log.Warn("malformed feed payload", zap.Error(err))
		return
	}

	if l.cache != nil && e.EventID != "" {
		first, err := l.cache.ClaimOnce(ctx, "feed:event:"+e.EventID, dedupTTL)
		if err != nil {
			log.Warn("feed dedup unavailable", zap.Error(err))
		} else if !first {
			return
		}
	}

	metrics.FeedEvents.Inc()
	l.hub.Broadcast(e)

	if l.stats != nil {
		l.stats.Invalidate(ctx)
	}

	if e.Table == "orders" {
		l.recordNotification(ctx, e)
	}
}

func (l *Listener) recordNotification(ctx context.Context, e *Event) {
	if l.notifications == nil {
		return
	}
	log := logger.L().With(zap.String("layer", "feed"), zap.String("event_id", e.EventID))

	var rec orderRecord
	if err := json.Unmarshal(e.Record, &rec); err != nil {
		log.Warn("unreadable order record in feed event", zap.Error(err))
		return
	}

	var err error
	switch e.Action {
	case ActionInsert:
		_, err = l.notifications.NotifyNewOrder(ctx, rec.TrackingID, rec.CustomerName)
	case ActionUpdate:
		_, err = l.notifications.NotifyStatusChange(ctx, rec.TrackingID, rec.Status)
	default:
		return
	}
	if err != nil {
		log.Warn("failed to record notification", zap.Error(err))
	}
}
