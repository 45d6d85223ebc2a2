package observability

import (
	"sync"
	"time"
)

// RouteSample identifies one (route, method, status) request counter.
type RouteSample struct {
	Path   string
	Method string
	Status int
}

// ErrorSample identifies one (route, method, error code) counter.
type ErrorSample struct {
	Path   string
	Method string
	Code   string
}

// Metrics keeps in-memory counters for the marketplace routes: how often
// each route answered with which status, the time spent doing so, and which
// error codes it produced.
type Metrics struct {
	mu        sync.Mutex
	requests  map[RouteSample]int64
	durations map[RouteSample]time.Duration
	errors    map[ErrorSample]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:  make(map[RouteSample]int64),
		durations: make(map[RouteSample]time.Duration),
		errors:    make(map[ErrorSample]int64),
	}
}

// RecordRequest counts a completed request under its final status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := RouteSample{Path: path, Method: method, Status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.durations[key] += duration
}

// RecordError counts an error response by its domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := ErrorSample{Path: path, Method: method, Code: code}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// RequestCount returns the counter for one route sample.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[RouteSample{Path: path, Method: method, Status: status}]
}

// TotalDuration returns the accumulated handling time for one route sample.
func (m *Metrics) TotalDuration(path, method string, status int) time.Duration {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durations[RouteSample{Path: path, Method: method, Status: status}]
}

// ErrorCount returns the counter for one error sample.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[ErrorSample{Path: path, Method: method, Code: code}]
}
