// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "logicsim",
	Short:         "logicsim simulates logic circuits",
	Long:          `logicsim builds a logic circuit from a YAML description and runs it tick by tick.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
//
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "circuit.yaml", "circuit description file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (overrides the config file)")
}

// loadConfig loads the file named by the --config flag and returns it along
// with a logger configured from --log-level or the config file.
//
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	lvl := cfg.LogLevel
	if f, _ := cmd.Flags().GetString("log-level"); f != "" {
		lvl = f
	}
	level := slog.LevelInfo
	if lvl != "" {
		if level, err = logging.ParseLevel(lvl); err != nil {
			return nil, nil, err
		}
	}
	return cfg, logging.New(level), nil
}

// names maps node ids to node names for display.
//
func names(sim *logicsim.Simulation) map[logicsim.NodeID]string {
	m := make(map[logicsim.NodeID]string)
	for _, n := range sim.Nodes() {
		m[n.ID()] = n.Name()
	}
	return m
}

func pointName(names map[logicsim.NodeID]string, p logicsim.Point) string {
	n, ok := names[p.Node]
	if !ok || n == "" {
		return p.String()
	}
	return n + "." + p.Polarity().String() + "[" + strconv.Itoa(p.Slot()) + "]"
}
