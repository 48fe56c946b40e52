package gpu

import (
	"fmt"
	"io"
	"math"
	"os"

	"mlready/internal/logging"
)

const bytesPerGB = 1 << 30

// Handle identifies an initialized telemetry session for one device. The
// zero value is the unavailable sentinel: queries against it return 0.0
// without touching the telemetry library. There is no transition back from
// live to unavailable and no teardown operation.
type Handle struct {
	index int
	ok    bool
}

// Available reports whether the handle refers to a live telemetry session.
func (h Handle) Available() bool {
	return h.ok
}

// Monitor provides ad-hoc GPU telemetry access, independent of the setup
// checker. A missing vendor library is an expected condition: Init degrades
// to the unavailable handle and the query operations stay callable.
type Monitor struct {
	telemetry Telemetry
	logger    *logging.Logger
	out       io.Writer
}

// NewMonitor creates a monitor using the build's telemetry implementation.
func NewMonitor(logger *logging.Logger) *Monitor {
	return NewMonitorWithTelemetry(NewTelemetry(), logger)
}

// NewMonitorWithTelemetry creates a monitor with custom telemetry (for testing)
func NewMonitorWithTelemetry(telemetry Telemetry, logger *logging.Logger) *Monitor {
	return &Monitor{
		telemetry: telemetry,
		logger:    logger,
		out:       os.Stdout,
	}
}

// SetOutput redirects the monitor's console lines
func (m *Monitor) SetOutput(w io.Writer) {
	m.out = w
}

// Init starts the telemetry session and resolves device 0, printing the
// device name. Any failure prints a warning and returns the unavailable
// handle instead. A live session lasts until process exit.
func (m *Monitor) Init() Handle {
	return m.InitDevice(0)
}

// InitDevice is Init for a specific device index.
func (m *Monitor) InitDevice(index int) Handle {
	if err := m.telemetry.Init(); err != nil {
		fmt.Fprintf(m.out, "[WARNING] GPU monitoring is not available: %v\n", err)
		m.logger.Warn("gpu.monitor.init.failed", "GPU monitoring unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return Handle{}
	}

	name, err := m.telemetry.DeviceName(index)
	if err != nil {
		fmt.Fprintf(m.out, "[WARNING] GPU monitoring is not available: %v\n", err)
		m.logger.Warn("gpu.monitor.device.failed", "Failed to resolve GPU device", map[string]interface{}{
			"device_index": index,
			"error":        err.Error(),
		})
		return Handle{}
	}

	fmt.Fprintf(m.out, "[GPU] Using %s\n", name)
	m.logger.Info("gpu.monitor.initialized", "GPU monitoring started", map[string]interface{}{
		"device_index": index,
		"name":         name,
	})

	return Handle{index: index, ok: true}
}

// Memory returns used memory of the handle's device in gigabytes, rounded
// to two decimals. The unavailable handle yields exactly 0.0 without a
// telemetry call; a failed query prints a warning and yields 0.0.
func (m *Monitor) Memory(h Handle) float64 {
	if !h.ok {
		return 0.0
	}

	info, err := m.telemetry.MemoryInfo(h.index)
	if err != nil {
		fmt.Fprintf(m.out, "[WARNING] Failed to get GPU memory: %v\n", err)
		m.logger.Warn("gpu.monitor.memory.failed", "GPU memory query failed", map[string]interface{}{
			"device_index": h.index,
			"error":        err.Error(),
		})
		return 0.0
	}

	usedGB := float64(info.Used) / bytesPerGB
	return math.Round(usedGB*100) / 100
}

// Utilization returns the device utilization percentage (0-100). The
// unavailable handle yields 0.0. Unlike Memory, a failed query prints
// nothing; the outcome is only visible at debug log level.
func (m *Monitor) Utilization(h Handle) float64 {
	if !h.ok {
		return 0.0
	}

	util, err := m.telemetry.UtilizationRate(h.index)
	if err != nil {
		m.logger.Debug("gpu.monitor.utilization.failed", "GPU utilization query failed", map[string]interface{}{
			"device_index": h.index,
			"error":        err.Error(),
		})
		return 0.0
	}

	return float64(util)
}
