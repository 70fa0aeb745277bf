package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/client"
)

// fakeBackend scripts the scrape endpoints: status responses are served
// in order, the last one repeating.
type fakeBackend struct {
	mu       sync.Mutex
	started  int
	statuses []string
	idx      int
	failPoll bool
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scrape", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.started++
		f.mu.Unlock()
	})
	mux.HandleFunc("/api/scrape/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failPoll {
			f.failPoll = false
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body := f.statuses[f.idx]
		if f.idx < len(f.statuses)-1 {
			f.idx++
		}
		_, _ = w.Write([]byte(body))
	})
	return mux
}

func (f *fakeBackend) startCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func newTestMonitor(t *testing.T, backend *fakeBackend, onDone func(string)) *Monitor {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	c := client.New(zap.NewNop(), srv.URL, time.Second)
	return New(zap.NewNop(), c, 10*time.Millisecond, onDone)
}

func TestMonitorCompletesCycle(t *testing.T) {
	backend := &fakeBackend{statuses: []string{
		`{"running":true,"message":"working"}`,
		`{"running":false,"message":"120 annonces récupérées"}`,
	}}

	var doneCount atomic.Int32
	var gotMsg atomic.Value
	done := make(chan struct{})
	m := newTestMonitor(t, backend, func(msg string) {
		doneCount.Add(1)
		gotMsg.Store(msg)
		close(done)
	})

	require.NoError(t, m.Start(context.Background()))
	assert.True(t, m.Running())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not complete")
	}
	m.Wait()

	assert.False(t, m.Running())
	assert.Equal(t, int32(1), doneCount.Load())
	assert.Equal(t, "120 annonces récupérées", gotMsg.Load())
	assert.Equal(t, 1, backend.startCalls())
}

func TestMonitorRejectsOverlappingStart(t *testing.T) {
	backend := &fakeBackend{statuses: []string{`{"running":true,"message":""}`}}
	m := newTestMonitor(t, backend, nil)

	require.NoError(t, m.Start(context.Background()))
	assert.ErrorIs(t, m.Start(context.Background()), ErrAlreadyRunning)

	m.Stop()
	m.Wait()
}

func TestMonitorManualStop(t *testing.T) {
	backend := &fakeBackend{statuses: []string{`{"running":true,"message":""}`}}

	var doneCount atomic.Int32
	m := newTestMonitor(t, backend, func(string) { doneCount.Add(1) })

	require.NoError(t, m.Start(context.Background()))
	assert.True(t, m.Stop())
	m.Wait()

	assert.False(t, m.Running())
	assert.Equal(t, int32(1), doneCount.Load())

	// Stop while idle is a no-op and fires nothing.
	assert.False(t, m.Stop())
	assert.Equal(t, int32(1), doneCount.Load())
}

func TestMonitorSurvivesPollFailure(t *testing.T) {
	backend := &fakeBackend{
		failPoll: true, // first poll errors, loop keeps going
		statuses: []string{`{"running":false,"message":"done"}`},
	}

	done := make(chan struct{})
	m := newTestMonitor(t, backend, func(string) { close(done) })

	require.NoError(t, m.Start(context.Background()))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not recover from poll failure")
	}
	m.Wait()
	assert.False(t, m.Running())
}

func TestMonitorStartRevertsOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := client.New(zap.NewNop(), srv.URL, time.Second)
	m := New(zap.NewNop(), c, 10*time.Millisecond, nil)

	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Running())
}
