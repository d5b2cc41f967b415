// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "Print the networks of a circuit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := cfg.Build()
		if err != nil {
			return err
		}
		c.Sim.Start()
		defer c.Sim.Stop()

		nm := names(c.Sim)
		out := cmd.OutOrStdout()
		for i, n := range c.Sim.Networks() {
			var drv, rcv []string
			for _, p := range n.Members {
				if p.IsOutput() {
					drv = append(drv, pointName(nm, p))
				} else {
					rcv = append(rcv, pointName(nm, p))
				}
			}
			fmt.Fprintf(out, "network %d\n  drivers:   %s\n  receivers: %s\n", i, strings.Join(drv, " "), strings.Join(rcv, " "))
		}
		log.Debug("networks built", "count", len(c.Sim.Networks()))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a circuit description",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := cfg.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes, %d wires, %d probes\n", len(c.Sim.Nodes()), len(c.Sim.Connections()), len(c.Probes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(validateCmd)
}
