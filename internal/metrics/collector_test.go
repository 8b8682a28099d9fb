package metrics_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/static-server/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		log       *slog.Logger
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		log = slog.New(slog.DiscardHandler)
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, log)
	})

	AfterEach(func() {
		cancel()
		time.Sleep(10 * time.Millisecond)
	})

	Describe("EventChannel", func() {
		It("should return a write-only channel", func() {
			Expect(collector.EventChannel()).NotTo(BeNil())
		})
	})

	Describe("Start and event processing", func() {
		It("should process EventRequestReceived", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventRequestReceived,
				Timestamp: time.Now(),
			}

			Eventually(func() int64 {
				return collector.Snapshot().TotalRequests
			}).Should(Equal(int64(1)))
		})

		It("should process EventFileServed", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:        metrics.EventFileServed,
				Timestamp:   time.Now(),
				ContentType: "text/css",
				Bytes:       6,
				Duration:    100 * time.Millisecond,
				StatusCode:  200,
			}

			Eventually(func() int64 {
				return collector.Snapshot().ContentTypes["text/css"].Bytes
			}).Should(Equal(int64(6)))

			snap := collector.Snapshot()
			Expect(snap.ContentTypes["text/css"].AvgResponse).To(Equal(100 * time.Millisecond))
			Expect(snap.StatusCodes[200]).To(Equal(int64(1)))
		})

		It("should process EventRequestRejected", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:       metrics.EventRequestRejected,
				Timestamp:  time.Now(),
				Reason:     metrics.ReasonOutsideRoot,
				StatusCode: 404,
			}

			Eventually(func() int64 {
				return collector.Snapshot().Rejections[metrics.ReasonOutsideRoot]
			}).Should(Equal(int64(1)))
		})

		It("should process EventRootHealthChanged", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventRootHealthChanged,
				Timestamp: time.Now(),
				Healthy:   true,
			}

			Eventually(func() bool {
				return collector.Snapshot().RootHealthy
			}).Should(BeTrue())
		})

		It("should drain events on context cancellation", func() {
			for i := 0; i < 5; i++ {
				collector.EventChannel() <- metrics.MetricEvent{
					Type:      metrics.EventRequestReceived,
					Timestamp: time.Now(),
				}
			}

			cancel()
			collector.Start(ctx)

			Eventually(func() int64 {
				return collector.Snapshot().TotalRequests
			}).Should(Equal(int64(5)))
		})
	})

	Describe("Emit", func() {
		It("should not block when the buffer is full", func() {
			small := metrics.NewCollector(1, log)

			done := make(chan struct{})
			go func() {
				defer close(done)
				small.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived})
				small.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived})
				small.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived})
			}()

			Eventually(done).Should(BeClosed())
		})
	})

	Describe("Handler", func() {
		It("should serve the snapshot as JSON", func() {
			collector.Start(ctx)
			collector.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived})

			Eventually(func() int64 {
				return collector.Snapshot().TotalRequests
			}).Should(Equal(int64(1)))

			w := httptest.NewRecorder()
			collector.Handler()(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.TotalRequests).To(Equal(int64(1)))
		})
	})
})
