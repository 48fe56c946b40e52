package checker

import "mlready/internal/gpu"

// mockTelemetry is a configurable gpu.Telemetry implementation for testing.
type mockTelemetry struct {
	InitErr     error
	ShutdownErr error
	Driver      string
	DriverErr   error
	CUDAVersion int
	CUDAErr     error
	Devices     int
	DevicesErr  error
	Name        string
	NameErr     error
	Mem         gpu.Memory
	MemErr      error
	Util        uint32
	UtilErr     error

	InitCalls     int
	ShutdownCalls int
}

func (m *mockTelemetry) Init() error {
	m.InitCalls++
	return m.InitErr
}

func (m *mockTelemetry) Shutdown() error {
	m.ShutdownCalls++
	return m.ShutdownErr
}

func (m *mockTelemetry) DriverVersion() (string, error) {
	return m.Driver, m.DriverErr
}

func (m *mockTelemetry) CUDADriverVersion() (int, error) {
	return m.CUDAVersion, m.CUDAErr
}

func (m *mockTelemetry) DeviceCount() (int, error) {
	return m.Devices, m.DevicesErr
}

func (m *mockTelemetry) DeviceName(index int) (string, error) {
	return m.Name, m.NameErr
}

func (m *mockTelemetry) MemoryInfo(index int) (gpu.Memory, error) {
	return m.Mem, m.MemErr
}

func (m *mockTelemetry) UtilizationRate(index int) (uint32, error) {
	return m.Util, m.UtilErr
}
