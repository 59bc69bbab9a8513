package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"seeklob/internal/bench"
	"seeklob/internal/lob"
	"seeklob/internal/types"
)

func newBenchmarkCmd() *cobra.Command {
	var (
		duration      time.Duration
		depth         int
		latencyRounds int
		changeRate    float64
		pairCount     int
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Drive synthetic snapshots through the differ and report throughput/latency",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.New().String()

			pairs := make([]types.PairID, pairCount)
			for i := range pairs {
				pairs[i] = types.PairID(i + 1)
			}

			parser := lob.New(pairs)
			result := bench.Run(parser, pairs, bench.Config{
				Duration:      duration,
				Depth:         depth,
				LatencyRounds: latencyRounds,
				ChangeRate:    changeRate,
			})

			fmt.Printf("run: %s\n", runID)
			fmt.Printf("snapshots: %d\n", result.Snapshots)
			fmt.Printf("events: %d\n", result.Events)
			fmt.Printf("p50 latency: %s\n", result.P50())
			fmt.Printf("p99 latency: %s\n", result.P99())
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "how long to run the benchmark")
	cmd.Flags().IntVar(&depth, "depth", 20, "book depth per generated snapshot")
	cmd.Flags().IntVar(&latencyRounds, "latency-rounds", 1000, "how many rounds to sample for the latency report")
	cmd.Flags().Float64Var(&changeRate, "change-rate", 0.3, "probability a given level changes qty each incremental tick")
	cmd.Flags().IntVar(&pairCount, "pairs", 1, "number of distinct pairs to interleave in the run")
	return cmd
}
