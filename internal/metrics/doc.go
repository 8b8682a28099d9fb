// Package metrics provides real-time metrics collection for the static file server.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Total request counts
//   - Files served per content type, with bytes and response times (P50, P95, P99)
//   - Rejections by reason (unsupported type, outside root, unreadable)
//   - HTTP status code distribution
//   - Root directory health
//
// The collector runs in a dedicated goroutine. Events are sent on a buffered
// channel with non-blocking semantics so the request path never waits on it.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:        metrics.EventFileServed,
//		ContentType: "text/html",
//		Bytes:       512,
//		Duration:    150 * time.Microsecond,
//		StatusCode:  200,
//	}
//
//	snapshot := collector.Snapshot()
//
// Storage is guarded by sync.RWMutex and pending events are drained on shutdown.
package metrics
