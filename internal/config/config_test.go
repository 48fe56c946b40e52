package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"EnvPath", cfg.EnvPath, ".env"},
		{"ModelPath", cfg.ModelPath, ""},
		{"DeviceIndex", cfg.GPU.DeviceIndex, 0},
		{"LogLevel", cfg.Logging.Level, "info"},
		{"LogFile", cfg.Logging.File, ""},
		{"ReportOutput", cfg.Report.Output, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if len(cfg.Dependencies) != 0 {
		t.Errorf("Expected no default dependencies, got %v", cfg.Dependencies)
	}
}

func TestValidation_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	errors := cfg.Validate()

	if len(errors) != 0 {
		t.Errorf("Validate() on default config returned errors: %v", errors)
	}
}

func TestValidation_NegativeDeviceIndex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GPU.DeviceIndex = -1

	errors := cfg.Validate()
	if len(errors) == 0 {
		t.Fatal("Validate() should return error for negative device index")
	}

	if errors[0].Path != "gpu.device_index" {
		t.Errorf("Expected error path 'gpu.device_index', got %s", errors[0].Path)
	}
}

func TestValidation_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"

	errors := cfg.Validate()
	if len(errors) == 0 {
		t.Error("Validate() should return error for invalid log level")
	}
}

func TestValidation_BlankDependency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dependencies = []string{"nvidia-smi", "  ", "docker"}

	errors := cfg.Validate()
	if len(errors) != 1 {
		t.Fatalf("Expected 1 validation error, got %d: %v", len(errors), errors)
	}

	if errors[0].Path != "dependencies[1]" {
		t.Errorf("Expected error path 'dependencies[1]', got %s", errors[0].Path)
	}
}

func TestLoadFrom(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `env_path: config/.env
model_path: /srv/models/whisper-large-v3
dependencies:
  - nvidia-smi
  - ffmpeg
gpu:
  device_index: 1
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.EnvPath != "config/.env" {
		t.Errorf("EnvPath = %s, want config/.env", cfg.EnvPath)
	}
	if cfg.ModelPath != "/srv/models/whisper-large-v3" {
		t.Errorf("ModelPath = %s, want /srv/models/whisper-large-v3", cfg.ModelPath)
	}
	if len(cfg.Dependencies) != 2 || cfg.Dependencies[0] != "nvidia-smi" || cfg.Dependencies[1] != "ffmpeg" {
		t.Errorf("Dependencies = %v, want [nvidia-smi ffmpeg]", cfg.Dependencies)
	}
	if cfg.GPU.DeviceIndex != 1 {
		t.Errorf("DeviceIndex = %d, want 1", cfg.GPU.DeviceIndex)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadFrom_PartialOverlayKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("model_path: /srv/models\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.EnvPath != ".env" {
		t.Errorf("EnvPath = %s, want default .env", cfg.EnvPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want default info", cfg.Logging.Level)
	}
	if cfg.ModelPath != "/srv/models" {
		t.Errorf("ModelPath = %s, want /srv/models", cfg.ModelPath)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("env_path: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("LoadFrom() should fail on malformed YAML")
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFrom() should fail for missing file")
	}
}
