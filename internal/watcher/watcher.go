// Package watcher drives the tick source: a cancelable poll loop that asks a
// channel probe once per interval whether a muted stream is playing, and
// accumulates one second of watch time when it is.
package watcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"swtd/internal/providers"
	"swtd/internal/services"
	"swtd/internal/structures"
)

type WatcherInterface interface {
	Start()
	Watch(url string)
	Stop()
	Running() bool
	Target() string
}

type Watcher struct {
	conf    *structures.Config
	logger  providers.Logger
	service services.TrackerServiceInterface
	metrics providers.MetricsProviderInterface
	probe   ProbeClient

	mu      sync.Mutex
	cancel  context.CancelFunc
	target  string
	running atomic.Bool
}

func NewWatcher(conf *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, metrics providers.MetricsProviderInterface) WatcherInterface {
	return &Watcher{
		conf:    conf,
		logger:  logger,
		service: service,
		metrics: metrics,
		probe:   NewHTTPProbe(conf.Watcher.RequestTimeout),
	}
}

// Start begins watching the configured probe target, if any.
func (w *Watcher) Start() {
	if !w.conf.Watcher.Enabled || w.conf.Watcher.ProbeUrl == "" {
		w.logger.Infof(providers.TypeApp, "Watcher disabled")
		return
	}
	w.Watch(w.conf.Watcher.ProbeUrl)
}

// Watch points the poll loop at a new probe target. Any running loop is
// stopped first; the switch is a stop-and-replace, never two loops at once.
func (w *Watcher) Watch(url string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.target = url
	w.running.Store(true)
	w.metrics.SetWatcherRunning(true)
	w.logger.Infof(providers.TypeApp, "Watching probe %s", url)

	go w.loop(ctx, url)
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *Watcher) stopLocked() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.target = ""
	w.running.Store(false)
	w.metrics.SetWatcherRunning(false)
}

func (w *Watcher) Running() bool {
	return w.running.Load()
}

func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

func (w *Watcher) loop(ctx context.Context, url string) {
	interval := w.conf.Watcher.Interval
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.tick(ctx, url) {
				return
			}
		}
	}
}

// tick performs one probe round trip. It reports false when the loop should
// stop: the probe is gone (the monitored resource disappeared) or the loop
// was canceled while the request was in flight.
func (w *Watcher) tick(ctx context.Context, url string) bool {
	info, err := w.probe.ChannelInfo(ctx, url)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		w.logger.Warnf(providers.TypeApp, "Probe %s unreachable, stopping watch: %s", url, err)
		w.mu.Lock()
		if w.target == url {
			w.stopLocked()
		}
		w.mu.Unlock()
		return false
	}

	if !info.Playing || !info.Muted || !w.service.TrackMuted() {
		return true
	}

	if err := w.service.Accumulate(info.Channel, 1, time.Now()); err != nil {
		w.logger.Errorf(providers.TypeApp, "Failed to accumulate tick for %q: %s", info.Channel, err)
		return true
	}
	w.metrics.IncTicks(info.Channel)
	return true
}
