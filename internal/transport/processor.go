package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"seeklob/internal/lob"
	"seeklob/internal/wire"
)

const defaultWorkers = 10

// ErrImproperConversion mirrors the teacher's guard in
// internal/net/server.go against a task arriving as the wrong type.
var ErrImproperConversion = errors.New("transport: improper task conversion")

// Processor subscribes to a snapshot subject, feeds each decoded
// snapshot through a shared Parser, and republishes the resulting
// events on a ticks subject. Adapted from the teacher's TCP Server
// (internal/net/server.go) and the original's NATS bridge
// (original_source/examples/nats_processor.cpp), trading TCP framing
// for pub/sub.
type Processor struct {
	nc   *nats.Conn
	pool Pool
	log  zerolog.Logger

	snapshotSubject string
	ticksSubject    string

	mu     sync.Mutex
	parser *lob.Parser
}

// NewProcessor builds a Processor bound to an existing NATS
// connection. parser is accessed under a mutex since multiple pool
// workers may decode snapshots for different pairs concurrently.
func NewProcessor(nc *nats.Conn, parser *lob.Parser, snapshotSubject, ticksSubject string, log zerolog.Logger) *Processor {
	return &Processor{
		nc:              nc,
		pool:            NewPool(defaultWorkers, log),
		log:             log,
		snapshotSubject: snapshotSubject,
		ticksSubject:    ticksSubject,
		parser:          parser,
	}
}

// Run subscribes and processes snapshot messages until ctx is
// cancelled. It blocks until the underlying tomb dies.
func (p *Processor) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error {
		p.pool.Setup(t, p.handleTask)
		return nil
	})

	sub, err := p.nc.Subscribe(p.snapshotSubject, func(msg *nats.Msg) {
		p.pool.AddTask(msg)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", p.snapshotSubject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			p.log.Error().Err(err).Msg("error unsubscribing")
		}
	}()

	p.log.Info().
		Str("snapshot_subject", p.snapshotSubject).
		Str("ticks_subject", p.ticksSubject).
		Msg("processor running")

	<-ctx.Done()
	t.Kill(nil)
	return t.Wait()
}

// handleTask decodes one snapshot message, runs it through the buy
// and sell differs, and republishes whatever events that produced.
func (p *Processor) handleTask(t *tomb.Tomb, task any) error {
	msg, ok := task.(*nats.Msg)
	if !ok {
		return ErrImproperConversion
	}

	pair, timestamp, buy, sell, err := wire.DecodeSnapshot(msg.Data)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to decode snapshot")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.parser.EmitOrdersAndUpdateOldBuyBook(pair, buy, timestamp); err != nil {
		p.log.Error().Err(err).Int64("pair", int64(pair)).Msg("buy book update failed")
		return nil
	}
	if err := p.parser.EmitOrdersAndUpdateOldSellBook(pair, sell, timestamp); err != nil {
		p.log.Error().Err(err).Int64("pair", int64(pair)).Msg("sell book update failed")
		return nil
	}

	events := p.parser.EmittedOrders()
	if len(events) > 0 {
		out := wire.EncodeOrders(events)
		if err := p.nc.Publish(p.ticksSubject, out); err != nil {
			p.log.Error().Err(err).Msg("publish failed")
		}
	}
	p.parser.ClearEmittedOrders()
	return nil
}
