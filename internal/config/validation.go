package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGPU()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateDependencies()...)

	return errors
}

func (c *Config) validateGPU() []ValidationError {
	if c.GPU.DeviceIndex >= 0 {
		return nil
	}

	return []ValidationError{{
		Path:    "gpu.device_index",
		Message: fmt.Sprintf("must be non-negative, got %d", c.GPU.DeviceIndex),
	}}
}

func (c *Config) validateLogging() []ValidationError {
	validLevels := []string{"debug", "info", "warn", "error"}
	if contains(validLevels, c.Logging.Level) {
		return nil
	}

	return []ValidationError{{
		Path:    "logging.level",
		Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
	}}
}

func (c *Config) validateDependencies() []ValidationError {
	var errors []ValidationError

	for i, dep := range c.Dependencies {
		if strings.TrimSpace(dep) == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("dependencies[%d]", i),
				Message: "must not be blank",
			})
		}
	}

	return errors
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
