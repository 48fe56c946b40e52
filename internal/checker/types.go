package checker

import "mlready/internal/sysinfo"

// RuntimeResult records the Go runtime the checker runs under.
type RuntimeResult struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// CUDAResult records the outcome of the CUDA stack probe. On failure only
// Error is populated.
type CUDAResult struct {
	DriverVersion string `json:"driver_version,omitempty"`
	CUDAAvailable bool   `json:"cuda_available"`
	CUDAVersion   string `json:"cuda_version,omitempty"`
	DeviceName    string `json:"device_name,omitempty"`
	Error         string `json:"error,omitempty"`
}

// GPUMemoryResult records free and total device memory in gigabytes.
type GPUMemoryResult struct {
	FreeGB  float64 `json:"free_gb"`
	TotalGB float64 `json:"total_gb"`
	Error   string  `json:"error,omitempty"`
}

// EnvFileResult records whether the env file exists and, when it does, how
// many non-blank, non-comment entries it holds. Absence is a normal
// outcome, not an error, and carries no count.
type EnvFileResult struct {
	Found bool `json:"found"`
	Count *int `json:"count,omitempty"`
}

// EnvLoadResult records whether the env file's pairs were loaded into the
// process environment.
type EnvLoadResult struct {
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

// ModelResult records the resolved model path and whether it exists. Path
// may be empty when neither an explicit path nor MODEL_PATH is set.
type ModelResult struct {
	Found bool   `json:"found"`
	Path  string `json:"path"`
}

// HostResult records the host capacity snapshot.
type HostResult struct {
	sysinfo.Info
	Error string `json:"error,omitempty"`
}

// DependencyResult lists the configured dependencies that could not be
// resolved, in input order. An empty list means all are present.
type DependencyResult struct {
	Missing []string `json:"missing"`
}

// Report is the checker's accumulated results mapping. Fields are nil until
// the corresponding check runs; re-running a check overwrites its entry.
// Field order mirrors the fixed run order of RunAll.
type Report struct {
	Runtime      *RuntimeResult    `json:"runtime,omitempty"`
	CUDA         *CUDAResult       `json:"cuda,omitempty"`
	GPUMemory    *GPUMemoryResult  `json:"gpu_memory,omitempty"`
	EnvFile      *EnvFileResult    `json:"env_file,omitempty"`
	EnvLoad      *EnvLoadResult    `json:"env_load,omitempty"`
	Model        *ModelResult      `json:"model,omitempty"`
	Host         *HostResult       `json:"host,omitempty"`
	Dependencies *DependencyResult `json:"dependencies,omitempty"`
}
