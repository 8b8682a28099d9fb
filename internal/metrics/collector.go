package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventRequestReceived   EventType = "request_received"
	EventFileServed        EventType = "file_served"
	EventRequestRejected   EventType = "request_rejected"
	EventRootHealthChanged EventType = "root_health_changed"
)

// RejectReason says why a request ended in a 404. It is never sent to clients.
type RejectReason string

const (
	ReasonUnsupportedType RejectReason = "unsupported_type"
	ReasonOutsideRoot     RejectReason = "outside_root"
	ReasonUnreadable      RejectReason = "unreadable"
)

type MetricEvent struct {
	Type        EventType
	Timestamp   time.Time
	ContentType string
	Bytes       int64
	Duration    time.Duration
	StatusCode  int
	Reason      RejectReason
	Healthy     bool
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Emit sends event without blocking. Events are dropped when the buffer is full.
func (c *Collector) Emit(event MetricEvent) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventRequestReceived:
		c.metrics.IncrementRequests()

	case EventFileServed:
		c.metrics.RecordServed(event.ContentType, event.Bytes, event.Duration, event.StatusCode)

	case EventRequestRejected:
		c.metrics.RecordRejected(event.Reason, event.StatusCode)

	case EventRootHealthChanged:
		c.metrics.UpdateRootHealth(event.Healthy)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
