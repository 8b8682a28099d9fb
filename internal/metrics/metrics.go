package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxSamples = 1000

type Metrics struct {
	mutex         sync.RWMutex
	requests      int64
	served        map[string]int64
	bytes         map[string]int64
	responseTimes map[string][]time.Duration
	rejections    map[RejectReason]int64
	statusCodes   map[int]int64
	rootHealthy   bool
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64                         `json:"total_requests"`
	TotalServed   int64                         `json:"total_served"`
	TotalRejected int64                         `json:"total_rejected"`
	Uptime        time.Duration                 `json:"uptime"`
	RootHealthy   bool                          `json:"root_healthy"`
	ContentTypes  map[string]ContentTypeMetrics `json:"content_types"`
	Rejections    map[RejectReason]int64        `json:"rejections"`
	StatusCodes   map[int]int64                 `json:"status_codes"`
}

type ContentTypeMetrics struct {
	Served      int64         `json:"served"`
	Bytes       int64         `json:"bytes"`
	AvgResponse time.Duration `json:"avg_response"`
	P50Response time.Duration `json:"p50_response"`
	P95Response time.Duration `json:"p95_response"`
	P99Response time.Duration `json:"p99_response"`
}

func (m *Metrics) IncrementRequests() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests++
}

func (m *Metrics) RecordServed(contentType string, bytes int64, duration time.Duration, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.served[contentType]++
	m.bytes[contentType] += bytes

	m.responseTimes[contentType] = append(m.responseTimes[contentType], duration)
	if len(m.responseTimes[contentType]) > maxSamples {
		m.responseTimes[contentType] = m.responseTimes[contentType][1:]
	}

	m.statusCodes[statusCode]++
}

func (m *Metrics) RecordRejected(reason RejectReason, statusCode int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.rejections[reason]++
	m.statusCodes[statusCode]++
}

func (m *Metrics) UpdateRootHealth(healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rootHealthy = healthy
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		TotalRequests: m.requests,
		Uptime:        time.Since(m.startTime),
		RootHealthy:   m.rootHealthy,
		ContentTypes:  make(map[string]ContentTypeMetrics, len(m.served)),
		Rejections:    make(map[RejectReason]int64, len(m.rejections)),
		StatusCodes:   make(map[int]int64, len(m.statusCodes)),
	}

	for reason, count := range m.rejections {
		snap.Rejections[reason] = count
		snap.TotalRejected += count
	}

	for code, count := range m.statusCodes {
		snap.StatusCodes[code] = count
	}

	for contentType, count := range m.served {
		snap.TotalServed += count

		ctm := ContentTypeMetrics{
			Served: count,
			Bytes:  m.bytes[contentType],
		}

		durations := m.responseTimes[contentType]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			ctm.AvgResponse = average(sorted)
			ctm.P50Response = percentile(sorted, 0.50)
			ctm.P95Response = percentile(sorted, 0.95)
			ctm.P99Response = percentile(sorted, 0.99)
		}

		snap.ContentTypes[contentType] = ctm
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		served:        make(map[string]int64),
		bytes:         make(map[string]int64),
		responseTimes: make(map[string][]time.Duration),
		rejections:    make(map[RejectReason]int64),
		statusCodes:   make(map[int]int64),
		startTime:     time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
