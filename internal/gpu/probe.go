package gpu

import "fmt"

// CUDAReport describes the CUDA stack visible through vendor telemetry.
type CUDAReport struct {
	DriverVersion string `json:"driver_version,omitempty"`
	CUDAAvailable bool   `json:"cuda_available"`
	CUDAVersion   string `json:"cuda_version,omitempty"`
	DeviceCount   int    `json:"device_count"`
	DeviceName    string `json:"device_name,omitempty"`
}

// Probe opens a short-lived telemetry session and reports driver version,
// CUDA version and the name of the first device. Partial failures inside a
// live session degrade to missing fields; only a failed session start is
// returned as an error.
func Probe(t Telemetry) (CUDAReport, error) {
	if err := t.Init(); err != nil {
		return CUDAReport{}, err
	}
	defer func() {
		_ = t.Shutdown()
	}()

	report := CUDAReport{}

	if version, err := t.DriverVersion(); err == nil {
		report.DriverVersion = version
	}

	if version, err := t.CUDADriverVersion(); err == nil {
		report.CUDAVersion = FormatCUDAVersion(version)
	}

	if count, err := t.DeviceCount(); err == nil {
		report.DeviceCount = count
		report.CUDAAvailable = count > 0
		if count > 0 {
			if name, err := t.DeviceName(0); err == nil {
				report.DeviceName = name
			}
		}
	}

	return report, nil
}

// FormatCUDAVersion renders NVML's packed CUDA version (major*1000 +
// minor*10, e.g. 12020) as "major.minor".
func FormatCUDAVersion(version int) string {
	return fmt.Sprintf("%d.%d", version/1000, (version%1000)/10)
}
