package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/treefile"
	"github.com/aretw0/arbor/pkg/recorder"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded action log against a treefile",
	Long:  `Builds the object tree from the treefile, applies every call in the configured action store in order, and prints the resulting snapshot as JSON on stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		storeFlag, _ := cmd.Flags().GetString("store")
		levelFlag, _ := cmd.Flags().GetString("log-level")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if storeFlag != "" {
			cfg.Store = storeFlag
		}
		if levelFlag != "" {
			cfg.LogLevel = levelFlag
		}
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		spec, err := treefile.Load(treePath)
		if err != nil {
			fmt.Printf("Error loading treefile: %v\n", err)
			os.Exit(1)
		}
		tree := treefile.Build(spec)

		store, closeStore, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening action store: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close action store", "err", err)
			}
		}()

		applied, err := recorder.Replay(context.Background(), tree.RootNode(), store)
		if err != nil {
			fmt.Printf("Replay failed after %d calls: %v\n", applied, err)
			os.Exit(1)
		}
		logger.Info("replay complete", "applied", applied)

		out, err := json.MarshalIndent(tree.Root().Snapshot(), "", "  ")
		if err != nil {
			fmt.Printf("Error rendering snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("store", "", "Action store backend to read from (overrides ARBOR_STORE)")
}
