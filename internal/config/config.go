// Package config loads the health check's runtime configuration from
// command-line flags, with SENSORCHECK_* environment variables as a
// fallback for connection settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luki/sensorcheck/internal/check"
)

// Operator defaults.
const (
	DefaultPort            = 22
	DefaultExpectedSensors = 3
	DefaultTimeout         = 10 * time.Second
)

var (
	defaultTempRange = []float64{-20, 80}
	defaultHumRange  = []float64{30, 50}
)

// Config is the fully resolved configuration for one run. It is built
// once before the check starts and never mutated afterwards.
type Config struct {
	Host     string
	User     string
	Password string
	KeyFile  string
	Port     int
	Timeout  time.Duration

	ExpectedSensors int
	TempRange       check.Range
	HumRange        check.Range

	JSONOutput bool
	LogLevel   string
}

// Load parses args (without the program name) into a validated Config.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("sensorcheck", pflag.ContinueOnError)
	fs.String("host", "", "IP or hostname of the remote device")
	fs.String("user", "", "SSH username")
	fs.String("password", "", "SSH password")
	fs.String("key", "", "path to an SSH private key file")
	fs.Int("port", DefaultPort, "SSH port of the remote host")
	fs.Duration("timeout", DefaultTimeout, "bound on the SSH exchange")
	fs.Int("expected-sensors", DefaultExpectedSensors, "expected total number of sensors (temp+hum)")
	fs.Float64Slice("temp-range", defaultTempRange, "min,max temperature in °C")
	fs.Float64Slice("hum-range", defaultHumRange, "min,max relative humidity in %")
	fs.Bool("json", false, "emit one JSON record instead of the text report")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("sensorcheck")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	tempRange, err := rangeFlag(fs, "temp-range")
	if err != nil {
		return Config{}, err
	}
	humRange, err := rangeFlag(fs, "hum-range")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Host:            v.GetString("host"),
		User:            v.GetString("user"),
		Password:        v.GetString("password"),
		KeyFile:         v.GetString("key"),
		Port:            v.GetInt("port"),
		Timeout:         v.GetDuration("timeout"),
		ExpectedSensors: v.GetInt("expected-sensors"),
		TempRange:       tempRange,
		HumRange:        humRange,
		JSONOutput:      v.GetBool("json"),
		LogLevel:        v.GetString("log-level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func rangeFlag(fs *pflag.FlagSet, name string) (check.Range, error) {
	vals, err := fs.GetFloat64Slice(name)
	if err != nil {
		return check.Range{}, err
	}
	if len(vals) != 2 {
		return check.Range{}, fmt.Errorf("--%s needs exactly two values (min,max), got %d", name, len(vals))
	}
	r := check.Range{Min: vals[0], Max: vals[1]}
	if !r.Valid() {
		return check.Range{}, fmt.Errorf("--%s: min %g exceeds max %g", name, r.Min, r.Max)
	}
	return r, nil
}

func (c Config) validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.User == "" {
		return errors.New("user is required")
	}
	if c.Password == "" && c.KeyFile == "" {
		return errors.New("either a password or a key file is required")
	}
	if c.Password != "" && c.KeyFile != "" {
		return errors.New("password and key file are mutually exclusive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.ExpectedSensors < 0 {
		return fmt.Errorf("expected sensor count must be non-negative, got %d", c.ExpectedSensors)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
