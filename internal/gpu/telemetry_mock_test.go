package gpu

// mockTelemetry is a configurable Telemetry implementation for testing.
type mockTelemetry struct {
	InitErr       error
	ShutdownErr   error
	Driver        string
	DriverErr     error
	CUDAVersion   int
	CUDAErr       error
	Devices       int
	DevicesErr    error
	Name          string
	NameErr       error
	Mem           Memory
	MemErr        error
	Util          uint32
	UtilErr       error

	InitCalls     int
	ShutdownCalls int
	MemCalls      int
	UtilCalls     int
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

func (m *mockTelemetry) MemoryInfo(index int) (Memory, error) {
	m.MemCalls++
	return m.Mem, m.MemErr
}

func (m *mockTelemetry) UtilizationRate(index int) (uint32, error) {
	m.UtilCalls++
	return m.Util, m.UtilErr
}
