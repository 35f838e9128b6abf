package proc

import (
	"sync/atomic"
)

// ManagerMetrics contains atomic metrics for a Manager.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ManagerMetrics struct {
	// ProcStartCount indicates the number of processes started.
	ProcStartCount atomic.Uint64
	// ProcDoneCount indicates the number of processes that terminated.
	ProcDoneCount atomic.Uint64
	// ProcPanicCount indicates the number of processes that panicked.
	ProcPanicCount atomic.Uint64

	// ProcActiveGauge indicates the number of processes currently running.
	ProcActiveGauge atomic.Int64
}

func (m *ManagerMetrics) incProcStartCount() {
	m.ProcStartCount.Add(1)
	m.ProcActiveGauge.Add(1)
}

func (m *ManagerMetrics) incProcDoneCount() {
	m.ProcDoneCount.Add(1)
	m.ProcActiveGauge.Add(-1)
}

func (m *ManagerMetrics) incProcPanicCount() {
	m.ProcPanicCount.Add(1)
}
