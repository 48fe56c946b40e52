// Package checker runs a battery of independent readiness checks for a
// machine-learning workload, accumulating machine-readable results while
// narrating each outcome on the console. No check ever propagates a
// failure: the worst outcome is a recorded error entry plus a printed
// warning, and RunAll always completes.
package checker

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"mlready/internal/envfile"
	"mlready/internal/gpu"
	"mlready/internal/logging"
	"mlready/internal/sysinfo"
)

const bytesPerGB = 1 << 30

// Config holds the checker's immutable construction parameters. Paths are
// not validated up front; a bad path surfaces as a not-found result later.
type Config struct {
	// EnvPath is the dotenv file to inspect and load. Defaults to ".env".
	EnvPath string
	// ModelPath is the model artifact location. When empty, the MODEL_PATH
	// environment variable is consulted at check time.
	ModelPath string
	// Dependencies are executable names to resolve on PATH.
	Dependencies []string
	// DeviceIndex selects the GPU device for memory queries.
	DeviceIndex int
	// EnvPassphrase decrypts .enc env files. Falls back to MLREADY_ENV_KEY.
	EnvPassphrase string
}

// Checker owns a results report and a console writer. Checks are
// idempotent: re-invoking one overwrites its report entry and re-prints.
type Checker struct {
	cfg       Config
	telemetry gpu.Telemetry
	logger    *logging.Logger
	out       io.Writer
	report    Report
}

// New creates a checker using the build's telemetry implementation.
func New(cfg Config, logger *logging.Logger) *Checker {
	return NewWithTelemetry(cfg, gpu.NewTelemetry(), logger)
}

// NewWithTelemetry creates a checker with custom telemetry (for testing)
func NewWithTelemetry(cfg Config, telemetry gpu.Telemetry, logger *logging.Logger) *Checker {
	if cfg.EnvPath == "" {
		cfg.EnvPath = ".env"
	}
	return &Checker{
		cfg:       cfg,
		telemetry: telemetry,
		logger:    logger,
		out:       os.Stdout,
	}
}

// SetOutput redirects the checker's console narration
func (c *Checker) SetOutput(w io.Writer) {
	c.out = w
}

// Report returns the accumulated results
func (c *Checker) Report() Report {
	return c.report
}

// CheckRuntime records the Go runtime version and platform. Cannot fail.
func (c *Checker) CheckRuntime() {
	result := &RuntimeResult{
		Version: runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	c.report.Runtime = result

	c.printOK("Go version: %s (%s/%s)", result.Version, result.OS, result.Arch)
}

// CheckCUDA probes the CUDA stack: driver version, CUDA availability and
// version, and the name of the first device when one is present.
func (c *Checker) CheckCUDA() {
	probe, err := gpu.Probe(c.telemetry)
	if err != nil {
		c.report.CUDA = &CUDAResult{Error: err.Error()}
		c.printError("CUDA error: %v", err)
		c.logger.Warn("check.cuda.failed", "CUDA probe failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	result := &CUDAResult{
		DriverVersion: probe.DriverVersion,
		CUDAAvailable: probe.CUDAAvailable,
		CUDAVersion:   probe.CUDAVersion,
		DeviceName:    probe.DeviceName,
	}
	c.report.CUDA = result

	c.printOK("Driver version: %s", result.DriverVersion)
	c.printOK("CUDA available: %t", result.CUDAAvailable)
	c.printOK("CUDA version: %s", result.CUDAVersion)
	if result.DeviceName != "" {
		c.printOK("GPU model: %s", result.DeviceName)
	}
}

// CheckGPUMemory opens its own short-lived telemetry session and records
// free and total memory of the configured device in gigabytes.
func (c *Checker) CheckGPUMemory() {
	result := &GPUMemoryResult{}
	c.report.GPUMemory = result

	if err := c.telemetry.Init(); err != nil {
		result.Error = err.Error()
		c.printError("GPU memory error: %v", err)
		c.logger.Warn("check.gpu_memory.failed", "GPU memory query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() {
		_ = c.telemetry.Shutdown()
	}()

	info, err := c.telemetry.MemoryInfo(c.cfg.DeviceIndex)
	if err != nil {
		result.Error = err.Error()
		c.printError("GPU memory error: %v", err)
		c.logger.Warn("check.gpu_memory.failed", "GPU memory query failed", map[string]interface{}{
			"device_index": c.cfg.DeviceIndex,
			"error":        err.Error(),
		})
		return
	}

	result.FreeGB = float64(info.Free) / bytesPerGB
	result.TotalGB = float64(info.Total) / bytesPerGB

	c.printOK("GPU memory: %.2f / %.2f GB free", result.FreeGB, result.TotalGB)
}

// CheckEnvFile tests existence of the env file and counts its entries.
// Absence is an expected outcome, not an error.
func (c *Checker) CheckEnvFile() {
	if _, err := os.Stat(c.cfg.EnvPath); err != nil {
		c.report.EnvFile = &EnvFileResult{Found: false}
		c.printWarn("Env file not found: %s", c.cfg.EnvPath)
		return
	}

	count, err := envfile.CountEntries(c.cfg.EnvPath)
	if err != nil {
		// File exists but cannot be read; report found without a count.
		c.report.EnvFile = &EnvFileResult{Found: true}
		c.printWarn("Env file unreadable: %v", err)
		c.logger.Warn("check.env_file.failed", "Env file unreadable", map[string]interface{}{
			"path":  c.cfg.EnvPath,
			"error": err.Error(),
		})
		return
	}

	c.report.EnvFile = &EnvFileResult{Found: true, Count: &count}
	c.printOK("Env variables found: %d entries", count)
}

// LoadEnv loads the env file's pairs into the process environment.
// Variables already set in the environment win. Encrypted files (with the
// .enc suffix) are decrypted with the configured passphrase.
func (c *Checker) LoadEnv() {
	var err error
	if strings.HasSuffix(c.cfg.EnvPath, envfile.EncryptedSuffix) {
		err = envfile.LoadEncrypted(c.cfg.EnvPath, c.passphrase())
	} else {
		err = envfile.Load(c.cfg.EnvPath)
	}

	if err != nil {
		c.report.EnvLoad = &EnvLoadResult{Error: err.Error()}
		c.printError("Env load error: %v", err)
		c.logger.Warn("check.env_load.failed", "Env load failed", map[string]interface{}{
			"path":  c.cfg.EnvPath,
			"error": err.Error(),
		})
		return
	}

	c.report.EnvLoad = &EnvLoadResult{Loaded: true}
	c.printOK("Env file loaded successfully")
}

// CheckModelPath resolves the model path from configuration or the
// MODEL_PATH environment variable and tests its existence.
func (c *Checker) CheckModelPath() {
	path := c.cfg.ModelPath
	if path == "" {
		path = os.Getenv("MODEL_PATH")
	}

	found := false
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			found = true
		}
	}

	c.report.Model = &ModelResult{Found: found, Path: path}

	if found {
		c.printOK("Model found: %s", path)
	} else {
		c.printWarn("Model not found: %s", path)
	}
}

// CheckHost records a host capacity snapshot: platform, CPUs, RAM and free
// disk at the working directory.
func (c *Checker) CheckHost() {
	info, err := sysinfo.Collect(".")
	if err != nil {
		c.report.Host = &HostResult{Error: err.Error()}
		c.printError("Host info error: %v", err)
		c.logger.Warn("check.host.failed", "Host snapshot failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.report.Host = &HostResult{Info: info}
	c.printOK("Host: %s (%s), %d CPUs, %.2f / %.2f GB RAM available, %.2f GB disk free",
		info.Hostname, info.Platform, info.CPUCount,
		info.AvailableMemGB, info.TotalMemGB, info.FreeDiskGB)
}

// CheckDependencies resolves each configured dependency name on PATH and
// collects the ones that fail, preserving input order.
func (c *Checker) CheckDependencies() {
	missing := make([]string, 0, len(c.cfg.Dependencies))
	for _, dep := range c.cfg.Dependencies {
		if _, err := exec.LookPath(dep); err != nil {
			missing = append(missing, dep)
		}
	}

	c.report.Dependencies = &DependencyResult{Missing: missing}

	if len(missing) > 0 {
		c.printError("Dependencies: missing: %s", strings.Join(missing, ", "))
	} else {
		c.printOK("Dependencies: all installed")
	}
}

// RunAll invokes every check in fixed order, skipping the dependency check
// when no dependencies are configured, and returns the accumulated report.
func (c *Checker) RunAll() Report {
	c.printBanner("ML setup verification")

	c.logger.Info("check.run.start", "Readiness run started", map[string]interface{}{
		"env_path":     c.cfg.EnvPath,
		"dependencies": len(c.cfg.Dependencies),
	})

	c.CheckRuntime()
	c.CheckCUDA()
	c.CheckGPUMemory()
	c.CheckEnvFile()
	c.LoadEnv()
	c.CheckModelPath()
	c.CheckHost()
	if len(c.cfg.Dependencies) > 0 {
		c.CheckDependencies()
	}

	c.printBanner("End of checks")

	c.logger.Info("check.run.complete", "Readiness run complete", nil)

	return c.report
}

func (c *Checker) passphrase() string {
	if c.cfg.EnvPassphrase != "" {
		return c.cfg.EnvPassphrase
	}
	return os.Getenv("MLREADY_ENV_KEY")
}
