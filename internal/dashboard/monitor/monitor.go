package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/client"
)

// ErrAlreadyRunning is returned by Start while a scrape cycle is in
// progress; overlapping jobs are not queued.
var ErrAlreadyRunning = errors.New("scrape job already running")

// DefaultPollInterval matches the reference polling cadence.
const DefaultPollInterval = 2 * time.Second

// Monitor drives one scrape cycle at a time: idle → running → idle.
// While running it polls the backend status endpoint on a fixed
// interval; when the backend reports the job finished (or the user
// stops it locally) the monitor goes idle and fires the done callback
// so the caller can refresh the record store.
type Monitor struct {
	Log      *zap.Logger
	Client   *client.Client
	Interval time.Duration

	// OnDone runs exactly once per cycle, on completion or manual
	// stop, with the message to surface to the user.
	OnDone func(message string)

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func New(log *zap.Logger, c *client.Client, interval time.Duration, onDone func(string)) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{Log: log, Client: c, Interval: interval, OnDone: onDone}
}

// Running reports whether a scrape cycle is in progress.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start sends the start command to the backend and begins polling.
// The running flag flips before the backend confirms acceptance; a
// transport failure on the start command reverts it.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	stop := make(chan struct{})
	m.stop = stop
	m.mu.Unlock()

	if err := m.Client.StartScrape(ctx); err != nil {
		m.mu.Lock()
		m.running = false
		m.stop = nil
		m.mu.Unlock()
		m.Log.Error("Failed to start scrape job", zap.Error(err))
		return err
	}

	m.Log.Info("Scrape job started", zap.Duration("pollInterval", m.Interval))
	m.wg.Add(1)
	go m.poll(stop)
	return nil
}

// Stop cancels the polling loop locally without waiting for the
// backend job to end, then fires the done callback so partial results
// get loaded. Stopping while idle is a no-op.
func (m *Monitor) Stop() bool {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return false
	}
	m.running = false
	close(m.stop)
	m.stop = nil
	m.mu.Unlock()

	m.Log.Info("Scrape job stopped manually")
	if m.OnDone != nil {
		m.OnDone("Scraping arrêté, résultats partiels chargés")
	}
	return true
}

// Wait blocks until the polling goroutine exits. Used in tests and on
// shutdown.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

func (m *Monitor) poll(stop chan struct{}) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			status, err := m.Client.ScrapeStatus(context.Background())
			if err != nil {
				// Keep polling; the next tick retries.
				m.Log.Warn("Scrape status poll failed", zap.Error(err))
				continue
			}
			if status.Running {
				continue
			}
			if !m.finish() {
				return // lost the race against Stop
			}
			msg := status.Message
			if msg == "" {
				msg = "Scraping terminé"
			}
			m.Log.Info("Scrape job completed", zap.String("message", msg))
			if m.OnDone != nil {
				m.OnDone(msg)
			}
			return
		}
	}
}

// finish moves running → idle; it reports false if Stop got there
// first, so the done callback never fires twice for one cycle.
func (m *Monitor) finish() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return false
	}
	m.running = false
	m.stop = nil
	return true
}
