// Package wire implements the little-endian binary codec that carries
// book snapshots and emitted orders between the differ and the outside
// world (see DESIGN.md for why this stays hand-rolled rather than
// reaching for a pack dependency).
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seeklob/internal/types"
)

// Layout constants mirror the teacher's message-framing style in
// internal/net/messages.go, but the byte offsets themselves are fixed
// by the wire contract this repo exchanges with (see spec §6).
const (
	msgOrders = uint8(1)

	snapshotHeaderSize = 20 // pairId(8) + timestamp(8) + numBids(2) + numAsks(2)
	bookLevelSize      = 12 // price(8) + qty(4)
	ordersHeaderSize   = 20 // type(1) + pairId(4) + seq(8) + count(4) + pad(3)
	orderSize          = 40 // pairId(8) + price(8) + time(8) + qty(4) + side(4) + type(4) + action(4)
)

// ErrShortBuffer is returned when a buffer is too small to hold the
// header or the levels its header claims to carry.
var ErrShortBuffer = errors.New("wire: buffer too short")

// ErrUnknownMessageType is returned when an orders buffer's leading
// type byte does not match msgOrders.
var ErrUnknownMessageType = errors.New("wire: unknown message type")

// EncodeSnapshot serializes a pair's buy and sell mirrors into the
// fixed binary snapshot format.
func EncodeSnapshot(pair types.PairID, timestamp types.Time, buy, sell []types.BookLevel) []byte {
	numLevels := len(buy) + len(sell)
	buf := make([]byte, snapshotHeaderSize+numLevels*bookLevelSize)

	binary.LittleEndian.PutUint64(buf[0:8], uint64(pair))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(timestamp))
	binary.LittleEndian.PutUint16(buf[16:18], uint16(len(buy)))
	binary.LittleEndian.PutUint16(buf[18:20], uint16(len(sell)))

	offset := snapshotHeaderSize
	for _, lvl := range buy {
		putLevel(buf[offset:], lvl)
		offset += bookLevelSize
	}
	for _, lvl := range sell {
		putLevel(buf[offset:], lvl)
		offset += bookLevelSize
	}
	return buf
}

func putLevel(dst []byte, lvl types.BookLevel) {
	binary.LittleEndian.PutUint64(dst[0:8], uint64(fbits(lvl.Price)))
	binary.LittleEndian.PutUint32(dst[8:12], uint32(lvl.Qty))
}

// DecodeSnapshot is the inverse of EncodeSnapshot. Every level in the
// returned slices carries timestamp as its Time, matching the
// original's deserializeSnapshot stamping every level with the
// snapshot's own timestamp rather than a per-level one.
func DecodeSnapshot(data []byte) (pair types.PairID, timestamp types.Time, buy, sell []types.BookLevel, err error) {
	if len(data) < snapshotHeaderSize {
		return 0, 0, nil, nil, ErrShortBuffer
	}

	pair = types.PairID(binary.LittleEndian.Uint64(data[0:8]))
	timestamp = types.Time(binary.LittleEndian.Uint64(data[8:16]))
	numBids := binary.LittleEndian.Uint16(data[16:18])
	numAsks := binary.LittleEndian.Uint16(data[18:20])

	expected := snapshotHeaderSize + int(numBids+numAsks)*bookLevelSize
	if len(data) < expected {
		return 0, 0, nil, nil, fmt.Errorf("%w: want %d bytes, have %d", ErrShortBuffer, expected, len(data))
	}

	offset := snapshotHeaderSize
	buy = make([]types.BookLevel, numBids)
	for i := range buy {
		buy[i] = getLevel(data[offset:], timestamp)
		offset += bookLevelSize
	}
	sell = make([]types.BookLevel, numAsks)
	for i := range sell {
		sell[i] = getLevel(data[offset:], timestamp)
		offset += bookLevelSize
	}
	return pair, timestamp, buy, sell, nil
}

func getLevel(src []byte, timestamp types.Time) types.BookLevel {
	price := fFromBits(binary.LittleEndian.Uint64(src[0:8]))
	qty := int32(binary.LittleEndian.Uint32(src[8:12]))
	return types.BookLevel{Price: price, Qty: types.Qty(qty), Time: timestamp}
}
