package proc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-csp/internal/pool"
	"github.com/arloliu/go-csp/logger"
)

// startTimeout bounds how long Start waits for a process goroutine to
// come up before reporting failure.
const startTimeout = 5 * time.Second

// Manager supervises named, long-lived processes. It provides a
// structured way to start, stop, and wait for process goroutines,
// ensuring proper cancellation signalling and resource cleanup.
//
// The Manager uses a context.Context to signal shutdown: Stop cancels
// it, and cooperative processes watch Done while blocking elsewhere.
// Channel-connected processes are normally shut down by poison instead;
// Done is for processes at the network edge (tickers, acceptors).
//
// Example usage:
//
//	mgr := proc.NewManager(ctx, logger.GetLogger())
//
//	err := mgr.Start("worker", proc.Func(func() {
//	    // ... process body ...
//	}))
//
//	// ... other operations ...
//
//	mgr.Stop()
//	mgr.Wait()
type Manager struct {
	pctx    context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  logger.Logger
	procs   *xsync.MapOf[string, time.Time] // name -> start time
	metrics ManagerMetrics
	mu      sync.RWMutex // protect ctx and cancel
	startMu sync.RWMutex // protect process creation during Wait()
}

// NewManager creates a new Manager with the given context as the parent
// context and logger.
func NewManager(ctx context.Context, l logger.Logger) *Manager {
	mgr := &Manager{
		pctx:   ctx,
		logger: l,
		procs:  xsync.NewMapOf[string, time.Time](),
	}
	mgr.ctx, mgr.cancel = context.WithCancel(ctx)

	return mgr
}

// getContext safely returns the current context
func (mgr *Manager) getContext() context.Context {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()

	return mgr.ctx
}

// Done returns a channel closed when Stop is called, for processes that
// block on things other than channels.
func (mgr *Manager) Done() <-chan struct{} {
	return mgr.getContext().Done()
}

// Start runs p in a new goroutine under the given name. It returns an
// error when the manager is already stopped, when the name is already
// running, or when the goroutine fails to start in time.
func (mgr *Manager) Start(name string, p Process) error {
	mgr.logger.Debug("Start process", "name", name)

	ctx := mgr.getContext()
	select {
	case <-ctx.Done():
		return fmt.Errorf("process manager already stopped")
	default:
	}

	if _, loaded := mgr.procs.LoadOrStore(name, time.Now()); loaded {
		return fmt.Errorf("process %s already running", name)
	}

	started := make(chan struct{})

	mgr.startMu.RLock()
	mgr.wg.Add(1)

	go func() {
		defer mgr.wg.Done()
		defer mgr.procs.Delete(name)

		mgr.metrics.incProcStartCount()
		close(started)

		defer func() {
			if r := recover(); r != nil {
				mgr.metrics.incProcPanicCount()
				mgr.logger.Error("panic in process", "name", name, "panic", r)
			}
			mgr.metrics.incProcDoneCount()
			mgr.logger.Debug(fmt.Sprintf("%s process terminated", name), "proc_count", mgr.Count())
		}()

		p.Run()
	}()
	mgr.startMu.RUnlock()

	timer := pool.GetTimer(startTimeout)
	defer pool.PutTimer(timer)

	select {
	case <-started:
		return nil
	case <-timer.C:
		return fmt.Errorf("timeout waiting for %s to start", name)
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while starting %s", name)
	}
}

// StartFunc is Start for a plain function body.
func (mgr *Manager) StartFunc(name string, fn func()) error {
	return mgr.Start(name, Func(fn))
}

// Stop signals all running processes watching Done.
func (mgr *Manager) Stop() {
	mgr.mu.Lock()
	if mgr.cancel != nil {
		mgr.cancel()
	}
	mgr.mu.Unlock()
}

// Wait waits for all processes to terminate.
func (mgr *Manager) Wait() {
	mgr.startMu.Lock()
	defer mgr.startMu.Unlock()

	// wait for all processes to terminate
	mgr.wg.Wait()

	// recreate context with lock
	mgr.mu.Lock()
	mgr.ctx, mgr.cancel = context.WithCancel(mgr.pctx)
	mgr.mu.Unlock()
}

// Count returns the number of currently running processes.
func (mgr *Manager) Count() int {
	return mgr.procs.Size()
}

// Names returns the names of the currently running processes.
func (mgr *Manager) Names() []string {
	names := make([]string, 0, mgr.procs.Size())
	mgr.procs.Range(func(name string, _ time.Time) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Metrics returns the manager's lifecycle metrics.
func (mgr *Manager) Metrics() *ManagerMetrics {
	return &mgr.metrics
}
