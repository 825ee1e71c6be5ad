// Package background contains tasks that run independently of the request-response
// cycle. It is started from main and stopped by closing its stop channel.
package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pinger is anything that can prove its connection is still usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Keepalive pings the inventory session on a fixed interval so the source does not
// drop it while idle. Failures are logged; nothing is reconnected.
type Keepalive struct {
	target   Pinger
	interval time.Duration
	timeout  time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewKeepalive creates a Keepalive. Each ping is bounded by timeout.
func NewKeepalive(target Pinger, interval, timeout time.Duration) *Keepalive {
	return &Keepalive{
		target:   target,
		interval: interval,
		timeout:  timeout,
		stop:     make(chan struct{}),
	}
}

// Start launches the ticker goroutine.
func (k *Keepalive) Start() {
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		slog.Info("inventory keepalive started", slog.Duration("interval", k.interval))
		for {
			select {
			case <-ticker.C:
				k.pingOnce()
			case <-k.stop:
				slog.Info("inventory keepalive stopped")
				return
			}
		}
	}()
}

// Stop signals the goroutine and waits for it to exit. It must be called once.
func (k *Keepalive) Stop() {
	close(k.stop)
	k.wg.Wait()
}

func (k *Keepalive) pingOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	start := time.Now()
	if err := k.target.Ping(ctx); err != nil {
		slog.Warn("inventory keepalive ping failed", slog.Any("error", err))
		return
	}
	slog.Debug("inventory keepalive ping", slog.Duration("took", time.Since(start)))
}
