package main

import (
	"fmt"
	"os"
	"strings"

	"mlready/internal/checker"
	"mlready/internal/config"
	"mlready/internal/diag"
	"mlready/internal/envfile"
	"mlready/internal/fsutil"
	"mlready/internal/gpu"
	"mlready/internal/logging"
	"mlready/internal/tui"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) <= 1 {
		runCheck()
		return
	}

	command := strings.ToLower(os.Args[1])
	if handler, ok := commandHandlers()[command]; ok {
		handler()
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	printUsage()
	os.Exit(1)
}

func commandHandlers() map[string]func() {
	return map[string]func(){
		"check":       runCheck,
		"gpu-check":   runGPUCheck,
		"watch":       runWatch,
		"diag":        runDiag,
		"encrypt-env": runEncryptEnv,
		"config":      runConfig,
		"version":     runVersion,
		"help":        printUsage,
		"--help":      printUsage,
		"-h":          printUsage,
	}
}

func runVersion() {
	fmt.Printf("mlready version %s\n", version)
}

// loadSetup loads configuration and builds the logger it prescribes.
// A broken config falls back to defaults so the checks still run.
func loadSetup() (config.Config, *logging.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load configuration: %v\n", err)
		cfg = config.DefaultConfig()
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		logger, err := logging.NewFileLogger(level, cfg.Logging.File)
		if err == nil {
			return cfg, logger
		}
		fmt.Fprintf(os.Stderr, "Warning: Could not open log file: %v\n", err)
	}

	return cfg, logging.NewLogger(level)
}

func runCheck() {
	cfg, logger := loadSetup()
	defer logger.Close()

	c := checker.New(checker.Config{
		EnvPath:      cfg.EnvPath,
		ModelPath:    cfg.ModelPath,
		Dependencies: cfg.Dependencies,
		DeviceIndex:  cfg.GPU.DeviceIndex,
	}, logger)

	report := c.RunAll()

	if cfg.Report.Output != "" {
		if err := checker.SaveReport(report, cfg.Report.Output); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not save report: %v\n", err)
			return
		}
		fmt.Printf("Report saved: %s\n", cfg.Report.Output)
	}
}

func runGPUCheck() {
	cfg, logger := loadSetup()
	defer logger.Close()

	fmt.Println("Checking GPU telemetry...")
	fmt.Println()

	monitor := gpu.NewMonitor(logger)
	handle := monitor.InitDevice(cfg.GPU.DeviceIndex)
	if !handle.Available() {
		os.Exit(1)
	}

	fmt.Printf("  Memory used:  %.2f GB\n", monitor.Memory(handle))
	fmt.Printf("  Utilization:  %.0f%%\n", monitor.Utilization(handle))
}

func runWatch() {
	cfg, logger := loadSetup()
	defer logger.Close()

	telemetry := gpu.NewTelemetry()
	if err := telemetry.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "GPU monitoring is not available: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = telemetry.Shutdown()
	}()

	sampler := tui.TelemetrySampler{
		Telemetry:   telemetry,
		DeviceIndex: cfg.GPU.DeviceIndex,
	}
	if err := tui.Run(sampler, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDiag() {
	cfg, logger := loadSetup()
	defer logger.Close()

	diagConfig := diag.NewConfig(version)
	diagConfig.EnvPath = cfg.EnvPath
	if cfg.Report.Output != "" {
		diagConfig.ReportPath = cfg.Report.Output
	}

	for i := 2; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--output" && i+1 < len(os.Args) {
			diagConfig.OutputPath = os.Args[i+1]
			i++
		}
	}

	fmt.Println("Creating diagnostic bundle...")

	zipPath, err := diag.NewPackager(diagConfig, logger).CreatePackage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create diagnostic bundle: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Diagnostic bundle created: %s\n", zipPath)
}

func runEncryptEnv() {
	_, logger := loadSetup()
	defer logger.Close()

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: mlready encrypt-env <env-file> [output]\n")
		fmt.Fprintf(os.Stderr, "The passphrase is read from MLREADY_ENV_KEY.\n")
		os.Exit(1)
	}

	src := os.Args[2]
	dst := src + envfile.EncryptedSuffix
	if len(os.Args) > 3 {
		dst = os.Args[3]
	}

	passphrase := os.Getenv("MLREADY_ENV_KEY")
	if passphrase == "" {
		fmt.Fprintf(os.Stderr, "MLREADY_ENV_KEY is not set\n")
		os.Exit(1)
	}

	if err := envfile.EncryptFile(src, dst, passphrase); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encrypt env file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Encrypted env file written: %s\n", dst)
}

func runConfig() {
	_, logger := loadSetup()
	defer logger.Close()

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: mlready config <subcommand>\n")
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		fmt.Fprintf(os.Stderr, "  test [path]  Test configuration file for validity\n")
		os.Exit(1)
	}

	subcommand := strings.ToLower(os.Args[2])
	switch subcommand {
	case "test":
		runConfigTest(logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", subcommand)
		fmt.Fprintf(os.Stderr, "Valid subcommands: test\n")
		os.Exit(1)
	}
}

func runConfigTest(logger *logging.Logger) {
	var cfg config.Config
	var configErr error

	if len(os.Args) > 3 {
		path := os.Args[3]
		fmt.Printf("Testing configuration file: %s\n", path)
		cfg, configErr = config.LoadFrom(path)
	} else {
		fmt.Println("Testing configuration (system + user merge):")
		fmt.Printf("  System config: %s\n", config.SystemConfigPath())
		if userPath := config.UserConfigPath(); userPath != "" {
			fmt.Printf("  User config:   %s\n", userPath)
		}
		fmt.Println()

		cfg, configErr = config.Load()
	}

	if configErr != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation FAILED:\n")
		fmt.Fprintf(os.Stderr, "  %v\n", configErr)
		logger.Error("config.validation.error", "Configuration validation failed", map[string]interface{}{
			"error": configErr.Error(),
		})
		os.Exit(1)
	}

	fmt.Println("Configuration is VALID")
	fmt.Println()
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Env Path:      %s\n", cfg.EnvPath)
	fmt.Printf("  Model Path:    %s\n", cfg.ModelPath)
	fmt.Printf("  Dependencies:  %s\n", strings.Join(cfg.Dependencies, ", "))
	fmt.Printf("  Device Index:  %d\n", cfg.GPU.DeviceIndex)
	fmt.Printf("  Log Level:     %s\n", cfg.Logging.Level)
	if cfg.Report.Output != "" {
		fmt.Printf("  Report Output: %s\n", cfg.Report.Output)
	}
}

func printUsage() {
	fmt.Printf(`mlready %s - ML workload readiness checker

Usage: mlready [command]

Commands:
  check        Run the full readiness check battery (default)
  gpu-check    Query GPU memory and utilization once
  watch        Live GPU memory and utilization screen
  diag         Create a diagnostic bundle (report, redacted env, host info)
  encrypt-env  Encrypt an env file with MLREADY_ENV_KEY
  config       Configuration tools (config test [path])
  version      Show version
  help         Show this help

Configuration is merged from %s and ~/.mlready/config.yaml.
State directory: %s (override with MLREADY_STATE_DIR).
`, version, config.SystemConfigPath(), fsutil.GetStateDir(fsutil.DefaultStateDir))
}
