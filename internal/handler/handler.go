package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/static-server/config"
	"github.com/angeloszaimis/static-server/internal/contenttype"
	"github.com/angeloszaimis/static-server/internal/metrics"
	"github.com/angeloszaimis/static-server/internal/resolver"
)

// NotFoundBody is written for every request that cannot be served.
const NotFoundBody = "404: File not found"

type StaticHandler struct {
	logger           *slog.Logger
	resolver         *resolver.Resolver
	debug            bool
	metricsCollector *metrics.Collector
}

// NewStaticHandler builds a handler over settings. collector may be nil.
func NewStaticHandler(logger *slog.Logger, settings config.Settings, collector *metrics.Collector) (*StaticHandler, error) {
	res, err := resolver.New(settings.Root, settings.DefaultFile, settings.Types)
	if err != nil {
		return nil, err
	}

	return &StaticHandler{
		logger:           logger,
		resolver:         res,
		debug:            settings.Debug,
		metricsCollector: collector,
	}, nil
}

func (h *StaticHandler) Root() string {
	return h.resolver.Root()
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.logger.With(slog.String("request_id", uuid.NewString()))

	if h.debug {
		log.Info(r.Method+" "+r.URL.RequestURI(),
			slog.String("from", extractClientIP(r)),
			slog.String("user_agent", r.UserAgent()))
	}

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: start,
	})

	resolved, err := h.resolver.Resolve(r.URL.Path)
	if err != nil {
		reason := metrics.ReasonOutsideRoot
		if errors.Is(err, resolver.ErrUnsupportedType) {
			reason = metrics.ReasonUnsupportedType
		}
		h.notFound(w, log, reason, err, start)
		return
	}

	data, err := os.ReadFile(resolved.FilePath)
	if err != nil {
		h.notFound(w, log, metrics.ReasonUnreadable, err, start)
		return
	}

	w.Header().Set("Content-Type", resolved.Type.String())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Debug("Failed to write response body", slog.Any("err", err))
	}

	h.emitEvent(metrics.MetricEvent{
		Type:        metrics.EventFileServed,
		Timestamp:   time.Now(),
		ContentType: resolved.Type.String(),
		Bytes:       int64(len(data)),
		Duration:    time.Since(start),
		StatusCode:  http.StatusOK,
	})
}

// notFound writes the single failure response. The reason stays internal.
func (h *StaticHandler) notFound(w http.ResponseWriter, log *slog.Logger, reason metrics.RejectReason, err error, start time.Time) {
	log.Debug("Request not servable",
		slog.String("reason", string(reason)),
		slog.Any("err", err))

	w.Header().Set("Content-Type", contenttype.HTML.String())
	w.Header().Set("Content-Length", strconv.Itoa(len(NotFoundBody)))
	w.WriteHeader(http.StatusNotFound)
	if _, err := w.Write([]byte(NotFoundBody)); err != nil {
		log.Debug("Failed to write response body", slog.Any("err", err))
	}

	h.emitEvent(metrics.MetricEvent{
		Type:       metrics.EventRequestRejected,
		Timestamp:  time.Now(),
		Duration:   time.Since(start),
		StatusCode: http.StatusNotFound,
		Reason:     reason,
	})
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (h *StaticHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	h.metricsCollector.Emit(event)
}
