// Command sensormock runs the sensor host emulator: an SSH server that
// answers `sensors -j` with randomized but plausible readings, so
// sensorcheck can be exercised end to end without real hardware.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luki/sensorcheck/internal/emulator"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	fs := pflag.NewFlagSet("sensormock", pflag.ExitOnError)
	fs.String("addr", ":2222", "TCP listen address for the SSH server")
	fs.String("user", "sensors", "accepted SSH username")
	fs.String("password", "sensors", "accepted SSH password")
	fs.Int("num-temps", 2, "number of temperature sensors to fabricate")
	fs.Int("num-hums", 2, "number of humidity sensors to fabricate")
	fs.Int64("seed", 0, "random seed, 0 means time-based")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.Parse(os.Args[1:])

	v := viper.New()
	v.SetEnvPrefix("sensormock")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		slog.Error("flag binding failed", "error", err)
		os.Exit(1)
	}
	// Knobs the deployed emulator image has always exposed.
	v.BindEnv("num-temps", "SENSORMOCK_NUM_TEMPS", "NUM_TEMPS")
	v.BindEnv("num-hums", "SENSORMOCK_NUM_HUMS", "NUM_HUMS")

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevels[v.GetString("log-level")]})
	slog.SetDefault(slog.New(handler))

	srv, err := emulator.NewServer(emulator.Config{
		Addr:     v.GetString("addr"),
		User:     v.GetString("user"),
		Password: v.GetString("password"),
		NumTemps: v.GetInt("num-temps"),
		NumHums:  v.GetInt("num-hums"),
		Seed:     v.GetInt64("seed"),
	})
	if err != nil {
		slog.Error("emulator setup failed", "error", err)
		os.Exit(1)
	}

	if err := srv.Listen(); err != nil {
		slog.Error("listen failed", "error", err)
		os.Exit(1)
	}
	slog.Info("sensormock listening",
		"addr", srv.Addr().String(),
		"user", v.GetString("user"),
		"num_temps", v.GetInt("num-temps"),
		"num_hums", v.GetInt("num-hums"),
	)

	if err := srv.Serve(); err != nil {
		slog.Error("serve failed", "error", err)
		os.Exit(1)
	}
}
