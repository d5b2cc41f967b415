// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/driver"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a circuit and print probe values",
	Long: `Builds the circuit, runs it for the configured number of ticks and prints
the value of every probe after each tick. With --ticks 0, runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("ticks") {
			cfg.Ticks, _ = cmd.Flags().GetInt("ticks")
		}
		if cmd.Flags().Changed("interval") {
			cfg.Interval, _ = cmd.Flags().GetDuration("interval")
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}

		mc := metrics.New()
		c, err := cfg.Build(logicsim.WithLogger(log), logicsim.WithObserver(mc))
		if err != nil {
			return err
		}

		if cfg.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", mc.Handler())
			srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("metrics server", "err", err)
				}
			}()
			defer srv.Close()
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprint(w, "tick")
		for _, p := range c.Probes {
			fmt.Fprint(w, "\t", p.Name)
		}
		fmt.Fprintln(w)

		log.Info("running", "nodes", len(c.Sim.Nodes()), "wires", len(c.Sim.Connections()), "ticks", cfg.Ticks)
		err = driver.Run(ctx, c.Sim, driver.Options{
			Ticks:    cfg.Ticks,
			Interval: cfg.Interval,
			OnTick: func(tick uint64) error {
				fmt.Fprint(w, strconv.FormatUint(tick, 10))
				for _, p := range c.Probes {
					v, err := c.Sim.Value(p.Point)
					if err != nil {
						return err
					}
					fmt.Fprint(w, "\t", strconv.FormatFloat(v, 'g', -1, 64))
				}
				fmt.Fprintln(w)
				if cfg.Interval > 0 {
					return w.Flush()
				}
				return nil
			},
		})
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
		if errors.Cause(err) == context.Canceled {
			log.Info("interrupted", "ticks", c.Sim.Ticks())
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("ticks", "n", 0, "number of ticks to run (overrides the config file)")
	runCmd.Flags().Duration("interval", 0, "minimum time between ticks (overrides the config file)")
	runCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (overrides the config file)")
}
