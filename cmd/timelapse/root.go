package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"timelapse/config"
	"timelapse/logging"
	"timelapse/metrics"
	"timelapse/serialcomm"
	"timelapse/trigger"
)

var (
	verbosity  int
	configPath string
	portName   string

	rootCmd = &cobra.Command{
		Use:   "timelapse",
		Short: "Drive a timelapse trigger controller over a serial port",
		Long: `timelapse sends trigger sequences (channel, exposure, filter wheel position)
to the acquisition microcontroller and runs acquisition cycles.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, nil)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute is called by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.toml or .yaml), defaults to $XDG_CONFIG_HOME/"+config.DefaultRelPath)
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port, overrides the config file")

	rootCmd.AddCommand(newRunCmd(), newInfoCmd(), newChannelsCmd())
}

// loadConfig reads the config file and applies flag overrides. cycles is nil
// when the flag was not given.
func loadConfig(cycles *int) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, portName, cycles); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, port string, cycles *int) error {
	if port != "" {
		cfg.Port = port
	}
	if cycles != nil {
		cfg.Cycles = *cycles
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// openSession opens the port from cfg and waits out the settle delay.
func openSession(cfg *config.Config, rec *metrics.Recorder) (*trigger.Session, error) {
	ch, err := serialcomm.OpenSerialChannel(cfg.Serial())
	if err != nil {
		return nil, err
	}
	log.Info().Str("port", cfg.Port).Int("baud", cfg.Baud).Msg("Serial port opened")

	opts := append(cfg.SessionOptions(),
		trigger.WithLogger(logging.GetLogger("trigger")),
		trigger.WithMetrics(rec),
	)
	return trigger.NewSession(ch, opts...), nil
}
