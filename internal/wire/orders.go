package wire

import (
	"encoding/binary"
	"sync/atomic"

	"seeklob/internal/types"
)

// sequence is the monotonically increasing message counter stamped on
// every encoded order batch, mirroring the original's
// static std::atomic<uint64_t> sequence{1} in serializeOrders.
var sequence uint64 = 0

// nextSequence returns the next wire sequence number, starting at 1.
func nextSequence() uint64 {
	return atomic.AddUint64(&sequence, 1)
}

// EncodeOrders serializes a batch of emitted events into the fixed
// binary orders format. All orders in a batch are expected to share a
// pair; the wire header's pairId comes from the first order, or zero
// for an empty batch.
func EncodeOrders(orders []types.EmittedOrder) []byte {
	count := uint32(len(orders))
	buf := make([]byte, ordersHeaderSize+int(count)*orderSize)

	var wirePair uint32
	if count > 0 {
		wirePair = uint32(orders[0].Pair)
	}
	seq := nextSequence()

	buf[0] = msgOrders
	binary.LittleEndian.PutUint32(buf[1:5], wirePair)
	binary.LittleEndian.PutUint64(buf[5:13], seq)
	binary.LittleEndian.PutUint32(buf[13:17], count)
	// buf[17:20] left zero, matching the original's 3-byte pad.

	offset := ordersHeaderSize
	for _, o := range orders {
		dst := buf[offset : offset+orderSize]
		binary.LittleEndian.PutUint64(dst[0:8], uint64(int64(o.Pair)))
		binary.LittleEndian.PutUint64(dst[8:16], fbits(o.Price))
		binary.LittleEndian.PutUint64(dst[16:24], uint64(o.Time))
		binary.LittleEndian.PutUint32(dst[24:28], uint32(o.Qty))
		binary.LittleEndian.PutUint32(dst[28:32], uint32(int32(o.Side)))
		binary.LittleEndian.PutUint32(dst[32:36], uint32(int32(o.Type)))
		binary.LittleEndian.PutUint32(dst[36:40], uint32(int32(o.Action)))
		offset += orderSize
	}
	return buf
}

// DecodeOrders is the inverse of EncodeOrders. It returns the wire
// sequence number alongside the decoded events.
func DecodeOrders(data []byte) (seq uint64, orders []types.EmittedOrder, err error) {
	if len(data) < ordersHeaderSize {
		return 0, nil, ErrShortBuffer
	}
	if data[0] != msgOrders {
		return 0, nil, ErrUnknownMessageType
	}
	seq = binary.LittleEndian.Uint64(data[5:13])
	count := binary.LittleEndian.Uint32(data[13:17])

	expected := ordersHeaderSize + int(count)*orderSize
	if len(data) < expected {
		return 0, nil, ErrShortBuffer
	}

	orders = make([]types.EmittedOrder, count)
	offset := ordersHeaderSize
	for i := range orders {
		src := data[offset : offset+orderSize]
		orders[i] = types.EmittedOrder{
			Pair:   types.PairID(int64(binary.LittleEndian.Uint64(src[0:8]))),
			Price:  fFromBits(binary.LittleEndian.Uint64(src[8:16])),
			Time:   types.Time(binary.LittleEndian.Uint64(src[16:24])),
			Qty:    types.Qty(int32(binary.LittleEndian.Uint32(src[24:28]))),
			Side:   types.Side(int32(binary.LittleEndian.Uint32(src[28:32]))),
			Type:   types.OrderType(int32(binary.LittleEndian.Uint32(src[32:36]))),
			Action: types.Action(int32(binary.LittleEndian.Uint32(src[36:40]))),
		}
		offset += orderSize
	}
	return seq, orders, nil
}
