package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor is an action-dispatch engine for mutable object trees",
	Long:  `Arbor hosts YAML-defined object trees, records every action flowing through them, and replays recorded logs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("tree", "tree.yaml", "Treefile defining the hosted object tree")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides ARBOR_LOG_LEVEL")
}
