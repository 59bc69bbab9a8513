package main

import (
	"github.com/spf13/cobra"
)

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seeklob",
		Short: "Snapshot-to-tick-by-tick order book differ",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a seeklob.yaml config file")

	root.AddCommand(newProcessorCmd())
	root.AddCommand(newBenchmarkCmd())
	root.AddCommand(newDemoCmd())
	return root
}
