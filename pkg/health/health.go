// Package health provides liveness and readiness probe endpoints backed by
// periodic background checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil means healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(ctx)
	c.healthy.Store(err == nil)
	if err != nil {
		c.lastErr.Store(&err)
	}
}

// Service runs registered checks in the background and serves their combined
// status. Liveness and readiness checks are tracked separately; readiness
// additionally requires SetReady(true), which the app flips off during
// shutdown to drain traffic.
type Service struct {
	mu        sync.Mutex
	liveness  []*check
	readiness []*check
	ready     atomic.Bool
	stop      context.CancelFunc
	done      chan struct{}
}

// New creates an empty health Service.
func New() *Service {
	return &Service{}
}

// AddLivenessCheck registers a liveness check. Not safe to call after Start.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveness = append(s.liveness, newCheck(name, timeout, fn))
}

// AddReadinessCheck registers a readiness check. Not safe to call after Start.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readiness = append(s.readiness, newCheck(name, timeout, fn))
}

func newCheck(name string, timeout time.Duration, fn CheckFunc) *check {
	c := &check{name: name, timeout: timeout, fn: fn}
	c.healthy.Store(true)
	return c
}

// SetReady flips the overall readiness gate.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start launches a goroutine that runs every registered check at the given
// interval until Stop is called or ctx is cancelled. Checks also run once
// immediately.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	s.done = make(chan struct{})

	runAll := func() {
		for _, c := range s.liveness {
			c.run(ctx)
		}
		for _, c := range s.readiness {
			c.run(ctx)
		}
	}
	runAll()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runAll()
			}
		}
	}()
}

// Stop halts the background checks and waits for them to finish.
func (s *Service) Stop() {
	if s.stop != nil {
		s.stop()
		<-s.done
	}
}

// LiveEndpoint serves the liveness probe.
func (s *Service) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	s.serve(w, s.liveness, true)
}

// ReadyEndpoint serves the readiness probe.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	s.serve(w, s.readiness, s.ready.Load())
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Service) serve(w http.ResponseWriter, checks []*check, gate bool) {
	resp := statusResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
	healthy := gate

	for _, c := range checks {
		if c.healthy.Load() {
			resp.Checks[c.name] = "ok"
			continue
		}
		healthy = false
		msg := "failed"
		if errp := c.lastErr.Load(); errp != nil {
			msg = (*errp).Error()
		}
		resp.Checks[c.name] = msg
	}

	status := http.StatusOK
	if !healthy {
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
