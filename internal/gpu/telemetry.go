package gpu

import "errors"

// ErrUnavailable reports that no vendor telemetry library is usable, either
// because the binary was built without the cuda tag or because the library
// cannot be loaded on this host. Callers resolve this once at startup; no
// operation re-probes per call.
var ErrUnavailable = errors.New("gpu telemetry unavailable")

// Memory holds device memory counters in bytes.
type Memory struct {
	Total uint64
	Free  uint64
	Used  uint64
}

// Telemetry is the vendor telemetry surface the rest of the module consumes.
// The cuda build binds it to NVML; the default build returns a stub. Tests
// substitute mocks.
type Telemetry interface {
	Init() error
	Shutdown() error
	DriverVersion() (string, error)
	CUDADriverVersion() (int, error)
	DeviceCount() (int, error)
	DeviceName(index int) (string, error)
	MemoryInfo(index int) (Memory, error)
	UtilizationRate(index int) (uint32, error)
}
