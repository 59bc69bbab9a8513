// Package dump renders a Parser's per-pair mirrors as human-readable
// text, the Go equivalent of the original's PrintFullBook, plus a
// small pair registry used by the demo CLI to track which pairs are
// worth dumping.
package dump

import (
	"fmt"
	"io"

	"github.com/tidwall/btree"

	"seeklob/internal/lob"
	"seeklob/internal/types"
)

// Registry tracks the set of pairs a demo session cares about,
// ordered by PairID. Adapted from the teacher's use of
// github.com/tidwall/btree for its price-level maps (internal/engine/orderbook.go),
// here keying on pair identity instead of price.
type Registry struct {
	pairs *btree.Map[types.PairID, struct{}]
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pairs: &btree.Map[types.PairID, struct{}]{}}
}

// Track records pair as one to include in dumps.
func (r *Registry) Track(pair types.PairID) {
	r.pairs.Set(pair, struct{}{})
}

// Pairs returns every tracked pair in ascending order.
func (r *Registry) Pairs() []types.PairID {
	out := make([]types.PairID, 0, r.pairs.Len())
	r.pairs.Scan(func(pair types.PairID, _ struct{}) bool {
		out = append(out, pair)
		return true
	})
	return out
}

// FullBook writes pair's sell side (best ask last, descending away from
// the spread), a spread marker, and its buy side (best bid first) to w.
// See original_source/src/snapshot_parser.cpp's PrintFullBook.
func FullBook(w io.Writer, p *lob.Parser, pair types.PairID) error {
	sell, err := p.SellSide(pair)
	if err != nil {
		return err
	}
	buy, err := p.BuySide(pair)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Level\tPrice\tQty")
	for i := sell.Len() - 1; i >= 0; i-- {
		lvl, _ := sell.At(i)
		fmt.Fprintf(w, "%d\t%v\t%d\n", i, lvl.Price, lvl.Qty)
	}
	fmt.Fprintln(w, "SPREAD")
	for i := 0; i < buy.Len(); i++ {
		lvl, _ := buy.At(i)
		fmt.Fprintf(w, "%d\t%v\t%d\n", i, lvl.Price, lvl.Qty)
	}
	fmt.Fprintln(w, "Level\tPrice\tQty")
	fmt.Fprintln(w)
	return nil
}
