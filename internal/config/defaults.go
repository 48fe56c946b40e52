package config

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		EnvPath:      ".env",
		ModelPath:    "",
		Dependencies: nil,
		GPU: GPUConfig{
			DeviceIndex: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Report: ReportConfig{
			Output: "",
		},
	}
}
