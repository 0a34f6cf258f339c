package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

const defaultPushInterval = 15 * time.Second

// Pusher flushes the registry to a Prometheus Pushgateway on a fixed interval
// and once more on Stop, so counters reach the sink even for short-lived
// processes.
type Pusher struct {
	pusher   *push.Pusher
	interval time.Duration
	logger   logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPusher returns a Pusher for m's registry, or nil when cfg.PushURL is empty.
func NewPusher(cfg Config, m *Metrics, log logger.Logger) *Pusher {
	if cfg.PushURL == "" {
		return nil
	}
	interval := cfg.PushInterval
	if interval <= 0 {
		interval = defaultPushInterval
	}
	job := cfg.PushJob
	if job == "" {
		job = "tracerelay"
	}
	return &Pusher{
		pusher:   push.New(cfg.PushURL, job).Gatherer(m.Registry),
		interval: interval,
		logger:   log,
	}
}

// Start launches the flush loop. It must be paired with Stop.
func (p *Pusher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *Pusher) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Flush(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("failed to push metrics", err, nil)
			}
		}
	}
}

// Flush pushes the current registry contents once.
func (p *Pusher) Flush(ctx context.Context) error {
	return p.pusher.PushContext(ctx)
}

// Stop ends the flush loop and performs a final flush.
func (p *Pusher) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.Flush(ctx)
}
