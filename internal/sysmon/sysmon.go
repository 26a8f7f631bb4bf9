// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Usage describes system load over a Begin/End window.
type Usage struct {
	// CPUPercent is the system-wide CPU usage over the window.
	CPUPercent float64
	// MemStartPercent and MemEndPercent are the memory in use at each edge.
	MemStartPercent float64
	MemEndPercent   float64
}

// Window measures system usage between Begin and End.
type Window struct {
	start Stats
}

// Begin takes the opening snapshot, which also primes the CPU counters so
// that End reports CPU usage over the window only.
func Begin() *Window {
	return &Window{start: Sample()}
}

// End closes the window.
func (w *Window) End() Usage {
	end := Sample()
	return Usage{
		CPUPercent:      end.CPUPercent,
		MemStartPercent: w.start.MemPercent,
		MemEndPercent:   end.MemPercent,
	}
}
