package wire

import "math"

func fbits(v float64) uint64 { return math.Float64bits(v) }

func fFromBits(bits uint64) float64 { return math.Float64frombits(bits) }
