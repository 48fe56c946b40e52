// Package diag assembles a support bundle: the readiness report, the
// redacted env and config files, and a host snapshot, zipped together with
// a checksummed manifest.
package diag

import "time"

// Manifest describes the bundle contents for integrity verification.
type Manifest struct {
	Timestamp string         `json:"timestamp"`
	Host      string         `json:"host"`
	Version   string         `json:"version"`
	Files     []ManifestFile `json:"files"`
}

// ManifestFile is a single bundle entry.
type ManifestFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// Config configures bundle collection. Missing inputs are skipped with a
// warning, never fatal.
type Config struct {
	ReportPath string
	EnvPath    string
	ConfigPath string
	OutputPath string
	Version    string
}

// NewConfig creates a default bundle config
func NewConfig(version string) *Config {
	return &Config{
		ReportPath: "/var/lib/mlready/report.json",
		EnvPath:    ".env",
		ConfigPath: "/etc/mlready/config.yaml",
		OutputPath: generateOutputPath(),
		Version:    version,
	}
}

func generateOutputPath() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return "mlready-diag-" + timestamp + ".zip"
}
