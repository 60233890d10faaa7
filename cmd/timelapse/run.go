package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"timelapse/config"
	"timelapse/logging"
	"timelapse/metrics"
	"timelapse/trigger"
)

func newRunCmd() *cobra.Command {
	var cycles int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Configure the trigger sequence and run acquisition cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *int
			if cmd.Flags().Changed("cycles") {
				override = &cycles
			}
			cfg, err := loadConfig(override)
			if err != nil {
				return err
			}
			if len(cfg.Triggers) == 0 {
				return fmt.Errorf("no triggers in config: %w", trigger.ErrNoTriggersConfigured)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			rec := metrics.NewRecorder(reg)
			if cfg.MetricsAddr != "" {
				srv := serveMetrics(cfg.MetricsAddr, reg)
				defer srv.Close()
			}

			session, err := openSession(cfg, rec)
			if err != nil {
				return err
			}
			defer session.Close()

			return runAcquisition(ctx, session, cfg, logging.GetLogger("run"))
		},
	}
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 0, "Number of acquisition cycles, 0 runs until interrupted")
	return cmd
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
	return srv
}

// runAcquisition stages the configured triggers, sends them, then alternates
// ACQ and INF until cfg.Cycles is reached or ctx is done.
func runAcquisition(ctx context.Context, session *trigger.Session, cfg *config.Config, logger zerolog.Logger) error {
	for _, t := range cfg.Triggers {
		if err := session.AddTrigger(t.Channel, t.Duration(), t.Motor()); err != nil {
			return err
		}
	}
	start := time.Now()
	if err := session.Configure(); err != nil {
		return err
	}
	logging.LogDuration(logger, start, "configure")

	for cycle := 1; cfg.Cycles == 0 || cycle <= cfg.Cycles; cycle++ {
		if err := session.Acquire(); err != nil {
			return err
		}
		if !wait(ctx, cfg.StatusDelay()) {
			return nil
		}

		line, err := session.QueryInfo()
		if err != nil {
			return err
		}
		event := logger.Info().Int("cycle", cycle)
		if st := trigger.ParseStatus(line); st.HasMotorPosition {
			event = event.Int("motor_position", st.MotorPosition)
		} else if line != "" {
			event = event.Str("status", line)
		}
		event.Msg("Acquisition cycle complete")

		if cfg.Cycles != 0 && cycle == cfg.Cycles {
			break
		}
		if !wait(ctx, cfg.Interval()) {
			return nil
		}
	}
	return nil
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		log.Info().Msg("Interrupted, stopping acquisition")
		return false
	case <-timer.C:
		return true
	}
}
