package proc

import (
	"fmt"
	"sync"
)

// Process is the unit of composition: a sequential body driven by Run.
// Run returns when the process terminates; a process blocked on a
// channel operation terminates by catching poison.
type Process interface {
	Run()
}

// Func adapts a plain function to the Process interface.
type Func func()

// Run implements Process.
func (f Func) Run() { f() }

// Parallel runs a set of processes concurrently, one goroutine per
// process, and joins on the completion of all of them. A Parallel is
// itself a Process and is reusable across Run calls; it must not be
// running twice at once.
type Parallel struct {
	procs []Process
}

// Par creates a Parallel over the given processes.
func Par(procs ...Process) *Parallel {
	return &Parallel{procs: procs}
}

// Add appends more processes. It must not be called while the Parallel
// is running.
func (p *Parallel) Add(procs ...Process) {
	p.procs = append(p.procs, procs...)
}

// Run starts every process in its own goroutine and blocks until all of
// them have returned. A panicking process does not interrupt its
// siblings: the join completes first, then the first captured panic is
// re-raised in the caller.
func (p *Parallel) Run() {
	var wg sync.WaitGroup

	var panicMu sync.Mutex
	var firstPanic any

	for _, proc := range p.procs {
		wg.Add(1)
		go func(proc Process) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicMu.Lock()
					if firstPanic == nil {
						firstPanic = r
					}
					panicMu.Unlock()
				}
			}()
			proc.Run()
		}(proc)
	}
	wg.Wait()

	if firstPanic != nil {
		panic(fmt.Sprintf("proc: process panicked: %v", firstPanic))
	}
}

// Sequential runs a set of processes one after another, in order. It is
// itself a Process.
type Sequential struct {
	procs []Process
}

// Seq creates a Sequential over the given processes.
func Seq(procs ...Process) *Sequential {
	return &Sequential{procs: procs}
}

// Add appends more processes. It must not be called while the
// Sequential is running.
func (s *Sequential) Add(procs ...Process) {
	s.procs = append(s.procs, procs...)
}

// Run runs the processes in order, returning after the last one.
func (s *Sequential) Run() {
	for _, proc := range s.procs {
		proc.Run()
	}
}
