package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"seeklob/internal/bench"
	"seeklob/internal/config"
	"seeklob/internal/dump"
	"seeklob/internal/lob"
	"seeklob/internal/types"
	"seeklob/internal/wire"
)

// newDemoCmd builds a small standalone client in the spirit of the
// teacher's flag-based cmd/client/client.go: it dials NATS, publishes a
// scripted sequence of snapshot and market-order traffic, listens
// briefly for whatever a live processor echoes back on the ticks
// subject, and prints the same transition it computes locally plus a
// final book dump.
func newDemoCmd() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Publish a scripted snapshot/market-order sequence over NATS and print the resulting TBT stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// requestID tags every line this demo run prints, including
			// whatever a live processor echoes back, the same role the
			// teacher's client gives each order's UUID. It is not sent
			// on the wire.
			requestID := uuid.New().String()
			fmt.Printf("demo request: %s\n", requestID)

			nc, err := nats.Connect(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connect to nats at %s: %w", cfg.NATSURL, err)
			}
			defer nc.Close()

			sub, err := nc.Subscribe(cfg.TicksSubject, func(msg *nats.Msg) {
				seq, events, err := wire.DecodeOrders(msg.Data)
				if err != nil {
					fmt.Fprintf(os.Stderr, "demo %s: failed to decode ticks message: %v\n", requestID, err)
					return
				}
				for _, e := range events {
					fmt.Printf("[%s] seq=%d %s %s %s price=%v qty=%d\n", requestID, seq, e.Side, e.Type, e.Action, e.Price, e.Qty)
				}
			})
			if err != nil {
				return fmt.Errorf("subscribe to %s: %w", cfg.TicksSubject, err)
			}
			defer sub.Unsubscribe()

			const pair types.PairID = 1
			parser := lob.New([]types.PairID{pair})
			gen := bench.NewSinusoidalGenerator(100, 1, 0.05, 0.2, 5, 10)

			buy, sell := gen.GenerateSnapshot()
			if err := runSnapshot(nc, cfg.SnapshotSubject, parser, pair, buy, sell, gen.Tick()); err != nil {
				return err
			}

			for i := 0; i < ticks; i++ {
				gen.GenerateIncrementalUpdate(buy, sell, 0.4)
				if err := runSnapshot(nc, cfg.SnapshotSubject, parser, pair, buy, sell, gen.Tick()); err != nil {
					return err
				}
			}

			// Script one market order against each side so the demo
			// exercises EmitMarketOrderAndUpdate{Buy,Sell}Book, not
			// just snapshot diffing (spec §4.4).
			topBuy, _ := parser.BuySide(pair)
			if front, ok := topBuy.Front(); ok {
				parser.ClearEmittedOrders()
				if err := parser.EmitMarketOrderAndUpdateBuyBook(pair, front.Qty/2+1, front.Price, gen.Tick()); err != nil {
					return err
				}
				printLocal(requestID, parser)
			}

			topSell, _ := parser.SellSide(pair)
			if front, ok := topSell.Front(); ok {
				parser.ClearEmittedOrders()
				if err := parser.EmitMarketOrderAndUpdateSellBook(pair, front.Qty/2+1, front.Price, gen.Tick()); err != nil {
					return err
				}
				printLocal(requestID, parser)
			}

			// Give a live processor a moment to echo the published
			// snapshots back on the ticks subject before we tear down.
			time.Sleep(200 * time.Millisecond)

			return dump.FullBook(os.Stdout, parser, pair)
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 5, "number of incremental snapshot updates to publish after the initial one")
	return cmd
}

// runSnapshot publishes buy/sell as a wire-encoded snapshot (for any
// processor listening live) and, independently, drives the same
// transition through the local parser so the demo has something to
// print even with no processor running.
func runSnapshot(nc *nats.Conn, subject string, parser *lob.Parser, pair types.PairID, buy, sell []types.BookLevel, t types.Time) error {
	out := wire.EncodeSnapshot(pair, t, buy, sell)
	if err := nc.Publish(subject, out); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	parser.ClearEmittedOrders()
	if err := parser.EmitOrdersAndUpdateOldBuyBook(pair, buy, t); err != nil {
		return err
	}
	if err := parser.EmitOrdersAndUpdateOldSellBook(pair, sell, t); err != nil {
		return err
	}
	for _, e := range parser.EmittedOrders() {
		fmt.Printf("%s %s %s price=%v qty=%d\n", e.Side, e.Type, e.Action, e.Price, e.Qty)
	}
	return nil
}

// printLocal prints the events accumulated on parser since the last
// clear, tagged with the demo's request ID the way the ticks listener
// tags events coming back from a live processor.
func printLocal(requestID string, parser *lob.Parser) {
	for _, e := range parser.EmittedOrders() {
		fmt.Printf("[%s local] %s %s %s price=%v qty=%d\n", requestID, e.Side, e.Type, e.Action, e.Price, e.Qty)
	}
}
