package gtime

import "math"

// Usage is what the trailer reports about one run. Both fields come from
// the same line, so a Usage is either fully populated or absent.
type Usage struct {
	ElapsedSec float64
	MaxRssKb   float64
}

func (u Usage) ElapsedMillis() int64 {
	return int64(math.Round(u.ElapsedSec * 1000))
}

// MemoryMb converts with a decimal factor of 1000, matching the limits
// judges have historically been configured against.
func (u Usage) MemoryMb() float64 {
	return u.MaxRssKb / 1000
}
