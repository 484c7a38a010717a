// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command sparsemap is a profiling and performance driver
// for the sparsemap package.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logger = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "sparsemap",
		Short: "profiling driver for the sparsemap package",
		Long: `sparsemap fills a persistent hash map with random keys
and measures inserts and lookups, use it with pprof.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "log at debug level")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logger.SetLevel(logrus.DebugLevel)
		}
	}

	rootCmd.AddCommand(perfCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
