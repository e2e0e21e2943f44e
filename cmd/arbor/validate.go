package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/treefile"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a treefile and its action log are well-formed",
	Long:  `Parses the treefile and, when a store is configured, verifies that every recorded call decodes and addresses a resolvable action on the built tree. No action is executed.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		storeFlag, _ := cmd.Flags().GetString("store")

		spec, err := treefile.Load(treePath)
		if err != nil {
			fmt.Printf("Treefile invalid: %v\n", err)
			os.Exit(1)
		}
		tree := treefile.Build(spec)
		fmt.Printf("Treefile OK: %s\n", treePath)

		if storeFlag == "" {
			return
		}

		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		cfg.Store = storeFlag

		store, closeStore, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening action store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		calls, err := store.List(context.Background())
		if err != nil {
			fmt.Printf("Action log unreadable: %v\n", err)
			os.Exit(1)
		}

		root := tree.RootNode()
		bad := 0
		for i, call := range calls {
			if err := checkCall(root, call); err != nil {
				fmt.Printf("  call %d: %v\n", i, err)
				bad++
			}
		}
		if bad > 0 {
			fmt.Printf("Action log: %d of %d calls invalid\n", bad, len(calls))
			os.Exit(1)
		}
		fmt.Printf("Action log OK: %d calls\n", len(calls))
	},
}

// checkCall verifies that the call addresses a live node and a defined
// action, without invoking anything.
func checkCall(root ports.Node, call domain.SerializedActionCall) error {
	node, err := root.Resolve(call.Path)
	if err != nil {
		return err
	}
	target, ok := node.StoredValue().(ports.ActionTarget)
	if !ok {
		return &domain.UnknownActionError{Name: call.Name, Path: call.Path}
	}
	if _, ok := target.Handler(call.Name); !ok {
		return &domain.UnknownActionError{Name: call.Name, Path: call.Path}
	}
	for j, arg := range call.Args {
		if !arg.IsRef() {
			continue
		}
		if _, err := node.Resolve(arg.Path()); err != nil {
			return fmt.Errorf("argument %d: %w", j, err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("store", "", "Action store backend holding the log to validate")
}
