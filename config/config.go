// Package config loads controller settings and the trigger list from a TOML
// (or YAML) file.
package config

import (
	"errors"
	"fmt"
	"time"

	"timelapse/serialcomm"
	"timelapse/trigger"
)

// DefaultRelPath is the config file location relative to the XDG config dirs.
const DefaultRelPath = "timelapse/config.toml"

type Trigger struct {
	Channel    string `toml:"channel" yaml:"channel"`
	DurationMS *int   `toml:"duration_ms" yaml:"duration_ms"`
	MotorPos   *int   `toml:"motor_pos" yaml:"motor_pos"`
}

// Duration returns the configured duration or trigger.DefaultDuration.
func (t Trigger) Duration() int {
	if t.DurationMS == nil {
		return trigger.DefaultDuration
	}
	return *t.DurationMS
}

// Motor returns the configured motor position or trigger.DefaultMotorPos.
func (t Trigger) Motor() int {
	if t.MotorPos == nil {
		return trigger.DefaultMotorPos
	}
	return *t.MotorPos
}

type Config struct {
	Port           string    `toml:"port" yaml:"port"`
	Baud           int       `toml:"baud" yaml:"baud"`
	ReadTimeoutMS  int       `toml:"read_timeout_ms" yaml:"read_timeout_ms"`
	SettleDelayMS  int       `toml:"settle_delay_ms" yaml:"settle_delay_ms"`
	CommandDelayMS int       `toml:"command_delay_ms" yaml:"command_delay_ms"`
	IntervalMS     int       `toml:"interval_ms" yaml:"interval_ms"`
	StatusDelayMS  int       `toml:"status_delay_ms" yaml:"status_delay_ms"`
	Cycles         int       `toml:"cycles" yaml:"cycles"`
	MetricsAddr    string    `toml:"metrics_addr" yaml:"metrics_addr"`
	Triggers       []Trigger `toml:"triggers" yaml:"triggers"`
}

func Default() *Config {
	return &Config{
		Port:           "/dev/ttyACM0",
		Baud:           115200,
		ReadTimeoutMS:  100,
		SettleDelayMS:  int(trigger.DefaultSettleDelay / time.Millisecond),
		CommandDelayMS: int(trigger.DefaultCommandDelay / time.Millisecond),
		IntervalMS:     60000,
	}
}

// Validate checks the transport and timing settings. Trigger entries are
// validated by the session when they are added.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port must be set"))
	}
	if c.Baud <= 0 {
		errs = append(errs, fmt.Errorf("baud must be positive, got %d", c.Baud))
	}
	if c.ReadTimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("read_timeout_ms must be positive, got %d", c.ReadTimeoutMS))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"settle_delay_ms", c.SettleDelayMS},
		{"command_delay_ms", c.CommandDelayMS},
		{"interval_ms", c.IntervalMS},
		{"status_delay_ms", c.StatusDelayMS},
		{"cycles", c.Cycles},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", f.name, f.value))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) Serial() *serialcomm.SerialConfig {
	return &serialcomm.SerialConfig{
		PortName:    c.Port,
		BaudRate:    c.Baud,
		ReadTimeout: ms(c.ReadTimeoutMS),
	}
}

// SessionOptions maps the timing settings onto session options.
func (c *Config) SessionOptions() []trigger.Option {
	return []trigger.Option{
		trigger.WithSettleDelay(ms(c.SettleDelayMS)),
		trigger.WithCommandDelay(ms(c.CommandDelayMS)),
	}
}

func (c *Config) Interval() time.Duration    { return ms(c.IntervalMS) }
func (c *Config) StatusDelay() time.Duration { return ms(c.StatusDelayMS) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
