package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"seeklob/internal/config"
	"seeklob/internal/lob"
	"seeklob/internal/transport"
	"seeklob/internal/types"
)

func newProcessorCmd() *cobra.Command {
	var pairsFlag string

	cmd := &cobra.Command{
		Use:   "processor",
		Short: "Subscribe to snapshots on NATS and publish differ events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			pairs, err := parsePairs(pairsFlag)
			if err != nil {
				return err
			}

			log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().
				Level(parseLevel(cfg.LogLevel))

			nc, err := nats.Connect(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connect to nats at %s: %w", cfg.NATSURL, err)
			}
			defer nc.Close()

			parser := lob.New(pairs, lob.WithLogger(log))
			proc := transport.NewProcessor(nc, parser, cfg.SnapshotSubject, cfg.TicksSubject, log)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			log.Info().Str("nats_url", cfg.NATSURL).Msg("processor starting")
			return proc.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&pairsFlag, "pairs", "1", "comma-separated list of pair IDs to track")
	return cmd
}

func parsePairs(s string) ([]types.PairID, error) {
	parts := strings.Split(s, ",")
	pairs := make([]types.PairID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pair id %q: %w", part, err)
		}
		pairs = append(pairs, types.PairID(id))
	}
	return pairs, nil
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
