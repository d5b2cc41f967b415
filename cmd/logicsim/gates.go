// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/db47h/logicsim/gatelib"
	"github.com/spf13/cobra"
)

var gatesCmd = &cobra.Command{
	Use:   "gates",
	Short: "List the available gate kinds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range gatelib.Kinds() {
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToLower(k))
		}
	},
}

func init() {
	rootCmd.AddCommand(gatesCmd)
}
