//go:build cuda

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NewTelemetry returns the NVML-backed telemetry implementation.
func NewTelemetry() Telemetry {
	return &nvmlTelemetry{}
}

// nvmlTelemetry adapts the NVML library to the Telemetry interface.
type nvmlTelemetry struct{}

func (t *nvmlTelemetry) Init() error {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nvmlError("nvml init", ret)
	}
	return nil
}

func (t *nvmlTelemetry) Shutdown() error {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return nvmlError("nvml shutdown", ret)
	}
	return nil
}

func (t *nvmlTelemetry) DriverVersion() (string, error) {
	version, ret := nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return "", nvmlError("driver version", ret)
	}
	return version, nil
}

func (t *nvmlTelemetry) CUDADriverVersion() (int, error) {
	version, ret := nvml.SystemGetCudaDriverVersion()
	if ret != nvml.SUCCESS {
		return 0, nvmlError("cuda driver version", ret)
	}
	return version, nil
}

func (t *nvmlTelemetry) DeviceCount() (int, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, nvmlError("device count", ret)
	}
	return count, nil
}

func (t *nvmlTelemetry) DeviceName(index int) (string, error) {
	device, err := t.device(index)
	if err != nil {
		return "", err
	}

	name, ret := device.GetName()
	if ret != nvml.SUCCESS {
		return "", nvmlError("device name", ret)
	}
	return name, nil
}

func (t *nvmlTelemetry) MemoryInfo(index int) (Memory, error) {
	device, err := t.device(index)
	if err != nil {
		return Memory{}, err
	}

	info, ret := device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return Memory{}, nvmlError("memory info", ret)
	}

	return Memory{
		Total: info.Total,
		Free:  info.Free,
		Used:  info.Used,
	}, nil
}

func (t *nvmlTelemetry) UtilizationRate(index int) (uint32, error) {
	device, err := t.device(index)
	if err != nil {
		return 0, err
	}

	util, ret := device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return 0, nvmlError("utilization rates", ret)
	}
	return util.Gpu, nil
}

func (t *nvmlTelemetry) device(index int) (nvml.Device, error) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return device, nvmlError(fmt.Sprintf("device handle %d", index), ret)
	}
	return device, nil
}

// nvmlError converts an NVML return code to an error, marking codes that
// mean "no usable library" with ErrUnavailable so callers can branch on it.
func nvmlError(op string, ret nvml.Return) error {
	switch ret {
	case nvml.ERROR_LIBRARY_NOT_FOUND, nvml.ERROR_DRIVER_NOT_LOADED, nvml.ERROR_UNINITIALIZED:
		return fmt.Errorf("%s: %s: %w", op, nvml.ErrorString(ret), ErrUnavailable)
	default:
		return fmt.Errorf("%s: %s", op, nvml.ErrorString(ret))
	}
}
