// Command sensorcheck performs a one-shot health check of the
// temperature and humidity sensors on a remote Linux host: it connects
// over SSH, runs `sensors -j`, validates sensor count and value ranges,
// prints a report, and exits with a code automation can act on.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/luki/sensorcheck/internal/check"
	"github.com/luki/sensorcheck/internal/config"
	"github.com/luki/sensorcheck/internal/remote"
	"github.com/luki/sensorcheck/internal/sensor"
)

// sensorsCommand is the fixed diagnostic run on the remote host.
const sensorsCommand = "sensors -j"

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the whole pipeline and returns the process exit code:
// connect → execute → parse → validate → resolve → report.
func run(args []string, out io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return check.ExitError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevels[cfg.LogLevel]})
	slog.SetDefault(slog.New(handler))

	executor := remote.NewSSHExecutor(remote.Options{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		KeyFile:  cfg.KeyFile,
		Timeout:  cfg.Timeout,
	})

	slog.Debug("running remote diagnostic", "host", cfg.Host, "port", cfg.Port, "command", sensorsCommand)
	raw, err := executor.Run(context.Background(), sensorsCommand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get sensor data: %v\n", err)
		return check.ExitError
	}

	readings, err := sensor.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sensors JSON: %v\n", err)
		return check.ExitError
	}
	slog.Debug("parsed sensor readings", "count", len(readings))

	expected := check.Expected{
		ExpectedSensors: cfg.ExpectedSensors,
		TempRange:       cfg.TempRange,
		HumRange:        cfg.HumRange,
	}
	result := check.Validate(readings, expected)
	code := check.Resolve(result)

	reporter := check.Reporter{Out: out, JSON: cfg.JSONOutput}
	if err := reporter.Report(result, expected, code); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		return check.ExitError
	}
	return code
}
