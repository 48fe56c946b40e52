package diag

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mlready/internal/logging"
	"mlready/internal/sysinfo"
)

// Collector gathers bundle artifacts. Each Collect method returns the
// artifacts it could gather; missing inputs produce an empty map and a
// warning, not an error.
type Collector struct {
	config   *Config
	redactor *Redactor
	logger   *logging.Logger
}

// NewCollector creates a new bundle collector
func NewCollector(config *Config, logger *logging.Logger) *Collector {
	return &Collector{
		config:   config,
		redactor: NewRedactor(),
		logger:   logger,
	}
}

// CollectReport gathers the persisted readiness report.
func (c *Collector) CollectReport() (map[string][]byte, error) {
	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.ReportPath); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.report.missing", "Readiness report not found", map[string]interface{}{
			"path": c.config.ReportPath,
		})
		return files, nil
	}

	content, err := os.ReadFile(c.config.ReportPath)
	if err != nil {
		return files, fmt.Errorf("failed to read report: %w", err)
	}

	files["report.json"] = content
	return files, nil
}

// CollectEnvFile gathers the env file with secret values redacted. The
// raw file never enters the bundle.
func (c *Collector) CollectEnvFile() (map[string][]byte, error) {
	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.EnvPath); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.env.missing", "Env file not found", map[string]interface{}{
			"path": c.config.EnvPath,
		})
		return files, nil
	}

	content, err := os.ReadFile(c.config.EnvPath)
	if err != nil {
		return files, fmt.Errorf("failed to read env file: %w", err)
	}

	files["env/"+filepath.Base(c.config.EnvPath)] = []byte(c.redactor.Redact(string(content)))

	c.logger.Info("diag.collect.env.complete", "Env file collected", map[string]interface{}{
		"redacted": true,
	})

	return files, nil
}

// CollectConfig gathers and redacts the configuration file.
func (c *Collector) CollectConfig() (map[string][]byte, error) {
	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.ConfigPath); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.config.missing", "Config file not found", map[string]interface{}{
			"path": c.config.ConfigPath,
		})
		return files, nil
	}

	content, err := os.ReadFile(c.config.ConfigPath)
	if err != nil {
		return files, fmt.Errorf("failed to read config: %w", err)
	}

	files["config/config.yaml"] = []byte(c.redactor.Redact(string(content)))

	c.logger.Info("diag.collect.config.complete", "Config collected", map[string]interface{}{
		"redacted": true,
	})

	return files, nil
}

// CollectSystemInfo gathers a host capacity snapshot.
func (c *Collector) CollectSystemInfo() (map[string][]byte, error) {
	files := make(map[string][]byte)

	snapshot := map[string]interface{}{
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"mlready_version": c.config.Version,
	}

	info, err := sysinfo.Collect(".")
	if err != nil {
		c.logger.Warn("diag.collect.sysinfo.failed", "Host snapshot failed", map[string]interface{}{
			"error": err.Error(),
		})
		snapshot["error"] = err.Error()
	} else {
		snapshot["host"] = info
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return files, fmt.Errorf("failed to marshal system info: %w", err)
	}

	files["system_info.json"] = data
	return files, nil
}

// CalculateSHA256 computes the SHA256 hash of data
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
