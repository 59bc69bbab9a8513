// Package types holds the scalar and event types shared by the snapshot
// differ, its wire codec, and the transport/CLI layers built on top of it.
package types

// PairID identifies a traded instrument.
type PairID int64

// Price is an IEEE-754 double. Comparisons must go through the numeric
// package's epsilon-aware helpers rather than raw ==/< .
type Price = float64

// Qty is the resting or traded quantity at a level. Negative values are
// accepted verbatim from input; arithmetic past that point is undefined.
type Qty = int32

// Time is a caller-supplied timestamp, monotone non-decreasing per pair
// by convention but not enforced.
type Time = uint64

// Side identifies which side of the book a level or event belongs to.
type Side int32

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "N/A"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType classifies an emitted event. STOP is defined for wire
// compatibility but never produced by the differ.
type OrderType int32

const (
	Limit OrderType = iota + 1
	Market
	Iceberg
	Stop
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "LIMIT"
	case Market:
		return "MARKET"
	case Iceberg:
		return "ICEBERG"
	case Stop:
		return "STOP"
	default:
		return "N/A"
	}
}

// Action classifies the mutation an event represents. MODIFY is defined
// for wire compatibility but never produced by the differ.
type Action int32

const (
	SeekerAdd Action = iota
	Add
	Remove
	Modify
)

func (a Action) String() string {
	switch a {
	case SeekerAdd:
		return "SEEKER_ADD"
	case Add:
		return "ADD"
	case Remove:
		return "REMOVE"
	case Modify:
		return "MODIFY"
	default:
		return "N/A"
	}
}

// BookLevel is an aggregated resting quantity at a price.
type BookLevel struct {
	Price Price
	Qty   Qty
	Time  Time
}

// EmittedOrder is a single TBT event produced by the differ or the
// market-order updater.
type EmittedOrder struct {
	Pair   PairID
	Price  Price
	Time   Time
	Qty    Qty
	Side   Side
	Type   OrderType
	Action Action
}

// SeekerBounds tracks the running price extremes per pair, used to
// classify a newly inserted level as SEEKER_ADD versus ADD.
type SeekerBounds struct {
	MaxBidSeen Price
	MinAskSeen Price
}
