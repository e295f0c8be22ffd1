package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/assetgraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects a repeatable flag. Each occurrence may also carry a
// comma separated list.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("assetgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
assetgraph - An incremental asset build orchestrator.

Usage:
  assetgraph [options] [MANIFEST_PATH...]

Arguments:
  MANIFEST_PATH
    Path to a .hcl/.yaml manifest or a directory containing manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	var manifests, targets, logicPaths listFlag
	flagSet.Var(&manifests, "manifest", "Path to a manifest file or directory. Repeatable.")
	flagSet.Var(&manifests, "m", "Path to a manifest file or directory (shorthand).")
	flagSet.Var(&targets, "target", "Target to build. Repeatable or comma separated. Default: all targets.")
	flagSet.Var(&logicPaths, "logic", "Extra file whose changes invalidate every artifact. Repeatable.")
	forceFlag := flagSet.Bool("force", false, "Rebuild every artifact regardless of staleness.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent workers for the executor.")
	envFileFlag := flagSet.String("env-file", ".env", "Env file loaded before manifests are evaluated. Missing files are ignored.")
	statCacheFlag := flagSet.Int("stat-cache", 0, "Size of the file stat cache used during staleness analysis. 0 uses the default.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(nil), manifests...)
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Manifest paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if _, ok := app.ParseLevel(logLevel); !ok {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPaths:   paths,
		Targets:         targets,
		LogicPaths:      logicPaths,
		EnvFile:         *envFileFlag,
		Force:           *forceFlag,
		WorkerCount:     *workersFlag,
		StatCacheSize:   *statCacheFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
