// Package eta implements the ETA propagator (§4.3): per-node arrival times
// along a route, bridge-filtered ETAs, and an uncertainty-accumulating
// variant producing ETASummary confidence intervals.
package eta

import (
	"math"
	"time"

	"github.com/plm/bridge-routing-engine/graph"
)

// ETA is the arrival time at one node along a route, and the cumulative
// travel time from the route's start (§3).
type ETA struct {
	NodeID              graph.NodeID
	ArrivalTime         time.Time
	TravelTimeFromStart float64
}

// BridgeETA pairs a bridge ID with the ETA of the edge that crosses it.
type BridgeETA struct {
	BridgeID string
	ETA      ETA
}

// ETASummary describes accumulated uncertainty for one node's ETA (§3).
type ETASummary struct {
	Mean     float64
	Variance float64
	Min      float64
	Max      float64
}

// StdDev returns the standard deviation implied by Variance.
func (s ETASummary) StdDev() float64 {
	if s.Variance <= 0 {
		return 0
	}
	return math.Sqrt(s.Variance)
}

// ConfidenceInterval returns a [lo, hi] interval around Mean spanning
// numStdDev standard deviations, clamped to [Min, Max]. This uncertainty
// model is heuristic and uncalibrated; treat the interval as informational,
// not a statistical guarantee.
func (s ETASummary) ConfidenceInterval(numStdDev float64) (lo, hi float64) {
	sd := s.StdDev()
	lo = s.Mean - numStdDev*sd
	hi = s.Mean + numStdDev*sd
	if lo < s.Min {
		lo = s.Min
	}
	if hi > s.Max {
		hi = s.Max
	}
	return lo, hi
}

// ETAEstimate pairs a plain ETA with its accumulated ETASummary.
type ETAEstimate struct {
	ETA     ETA
	Summary ETASummary
}

// TimeOfDayCategory names the windows of §4.3's multiplier table.
type TimeOfDayCategory int

const (
	MorningRush TimeOfDayCategory = iota
	Midday
	EveningRush
	Evening
	LateNight
)

func (c TimeOfDayCategory) String() string {
	switch c {
	case MorningRush:
		return "morning_rush"
	case Midday:
		return "midday"
	case EveningRush:
		return "evening_rush"
	case Evening:
		return "evening"
	case LateNight:
		return "late_night"
	default:
		return "unknown"
	}
}

// CategorizeHour maps a local hour-of-day (0-23) to its §4.3 category and
// travel-time multiplier.
func CategorizeHour(hour int) (TimeOfDayCategory, float64) {
	switch {
	case hour >= 5 && hour <= 8:
		return MorningRush, 1.3
	case hour >= 9 && hour <= 15:
		return Midday, 1.1
	case hour >= 16 && hour <= 18:
		return EveningRush, 1.3
	case hour >= 19 && hour <= 21:
		return Evening, 1.0
	default: // 22:00-04:59
		return LateNight, 0.9
	}
}
