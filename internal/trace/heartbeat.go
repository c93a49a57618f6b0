package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stalled run is visible in the
// trace: beats with no SpanEnd in between point at a stuck file.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
	done     sync.WaitGroup
}

// StartHeartbeat returns nil when t is disabled or interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, interval: interval, stop: make(chan struct{})}
	h.done.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.done.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	beat := 0
	for {
		select {
		case now := <-ticker.C:
			beat++
			h.tracer.Emit(&Event{
				Time:  now,
				Kind:  KindHeartbeat,
				Scope: ScopeDriver,
				GID:   goroutineID(),
				Name:  "heartbeat",
				Extra: map[string]string{"beat": strconv.Itoa(beat)},
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the goroutine and waits for it. Safe on nil and repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
