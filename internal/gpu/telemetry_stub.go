//go:build !cuda

package gpu

// NewTelemetry returns a stub when built without the cuda tag. Every query
// reports ErrUnavailable, so library absence surfaces as a normal,
// non-fatal outcome everywhere.
func NewTelemetry() Telemetry {
	return stubTelemetry{}
}

type stubTelemetry struct{}

func (stubTelemetry) Init() error                           { return ErrUnavailable }
func (stubTelemetry) Shutdown() error                       { return nil }
func (stubTelemetry) DriverVersion() (string, error)        { return "", ErrUnavailable }
func (stubTelemetry) CUDADriverVersion() (int, error)       { return 0, ErrUnavailable }
func (stubTelemetry) DeviceCount() (int, error)             { return 0, ErrUnavailable }
func (stubTelemetry) DeviceName(int) (string, error)        { return "", ErrUnavailable }
func (stubTelemetry) MemoryInfo(int) (Memory, error)        { return Memory{}, ErrUnavailable }
func (stubTelemetry) UtilizationRate(int) (uint32, error)   { return 0, ErrUnavailable }
