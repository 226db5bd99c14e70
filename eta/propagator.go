package eta

import (
	"time"

	"github.com/plm/bridge-routing-engine/graph"
)

// EstimateETAs walks route, accumulating edge.TravelTimeSeconds from
// departure, and returns one ETA per node. The departure node always has
// TravelTimeFromStart == 0 (§4.3).
func EstimateETAs(route *graph.RoutePath, departure time.Time) ([]ETA, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	etas := make([]ETA, len(route.Nodes))
	cumulative := 0.0
	etas[0] = ETA{NodeID: route.Nodes[0], ArrivalTime: departure, TravelTimeFromStart: 0}
	for i, e := range route.Edges {
		cumulative += e.TravelTimeSeconds
		etas[i+1] = ETA{
			NodeID:              route.Nodes[i+1],
			ArrivalTime:         departure.Add(time.Duration(cumulative * float64(time.Second))),
			TravelTimeFromStart: cumulative,
		}
	}
	return etas, nil
}

// EstimateBridgeETAsWithIDs filters EstimateETAs to bridge edges only,
// pairing each with its bridge_id (§4.3). The ETA recorded for a bridge
// crossing is the arrival time at the edge's destination node.
func EstimateBridgeETAsWithIDs(route *graph.RoutePath, departure time.Time) ([]BridgeETA, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	etas, err := EstimateETAs(route, departure)
	if err != nil {
		return nil, err
	}

	var out []BridgeETA
	for i, e := range route.Edges {
		if !e.IsBridge {
			continue
		}
		out = append(out, BridgeETA{BridgeID: e.BridgeID, ETA: etas[i+1]})
	}
	return out, nil
}

// EstimateETAsWithUncertainty walks route maintaining a cumulative
// ETASummary per node (§4.3): each edge contributes variance
//
//	base * timeOfDayMul * (bridge ? 1.5 : 1.0) * (travelTime > 300 ? 1.2 : 1.0)
//
// with base = edge.TravelTimeSeconds * 0.1. Min/Max are mean*0.7..mean*1.3.
func EstimateETAsWithUncertainty(route *graph.RoutePath, departure time.Time) ([]ETAEstimate, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	estimates := make([]ETAEstimate, len(route.Nodes))
	cumulativeTime := 0.0
	cumulativeVariance := 0.0

	estimates[0] = ETAEstimate{
		ETA:     ETA{NodeID: route.Nodes[0], ArrivalTime: departure, TravelTimeFromStart: 0},
		Summary: summaryFor(0, 0),
	}

	for i, e := range route.Edges {
		_, mul := CategorizeHour(departure.Add(time.Duration(cumulativeTime * float64(time.Second))).Hour())

		base := e.TravelTimeSeconds * 0.1
		variance := base * mul
		if e.IsBridge {
			variance *= 1.5
		}
		if e.TravelTimeSeconds > 300 {
			variance *= 1.2
		}
		cumulativeVariance += variance
		cumulativeTime += e.TravelTimeSeconds

		estimates[i+1] = ETAEstimate{
			ETA: ETA{
				NodeID:              route.Nodes[i+1],
				ArrivalTime:         departure.Add(time.Duration(cumulativeTime * float64(time.Second))),
				TravelTimeFromStart: cumulativeTime,
			},
			Summary: summaryFor(cumulativeTime, cumulativeVariance),
		}
	}

	return estimates, nil
}

func summaryFor(mean, variance float64) ETASummary {
	return ETASummary{
		Mean:     mean,
		Variance: variance,
		Min:      mean * 0.7,
		Max:      mean * 1.3,
	}
}
