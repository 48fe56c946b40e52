package config

// Config represents the complete mlready configuration
type Config struct {
	EnvPath      string        `yaml:"env_path"`
	ModelPath    string        `yaml:"model_path"`
	Dependencies []string      `yaml:"dependencies"`
	GPU          GPUConfig     `yaml:"gpu"`
	Logging      LoggingConfig `yaml:"logging"`
	Report       ReportConfig  `yaml:"report"`
}

// GPUConfig selects which device telemetry queries target
type GPUConfig struct {
	DeviceIndex int `yaml:"device_index"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ReportConfig controls readiness report persistence
type ReportConfig struct {
	Output string `yaml:"output"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
