package scorer

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-rendezvous"
	"github.com/gammazero/workerpool"

	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/rterr"
)

// ScorePathsConcurrent is the opt-in parallel form of ScorePaths permitted
// by §5 ("parallelization is permissible only if the predictor is safe to
// call concurrently"): it refuses to run if s.pred.Supports(true) is false.
//
// Routes are distributed across numLanes single-worker gammazero/workerpool
// lanes. Which lane handles a given route is chosen by rendezvous (HRW)
// hashing on the route's first bridge ID, so repeated scoring of routes
// sharing a bridge tends to land on the same lane — and therefore the same
// goroutine — improving feature-cache locality without affecting
// correctness: a route with no bridges, or hashed to any lane, still
// produces the same PathScore ScorePath would.
func (s *Scorer) ScorePathsConcurrent(ctx context.Context, routes []*graph.RoutePath, departureTime time.Time, numLanes int) ([]*PathScore, error) {
	if len(routes) == 0 {
		return nil, rterr.EmptyPathSet("score_paths_concurrent called with no routes")
	}
	if !s.pred.Supports(true) {
		return nil, rterr.InvalidConfiguration("predictor is not safe for concurrent use; call ScorePaths instead")
	}
	if numLanes <= 0 {
		numLanes = 4
	}

	lanes := make([]string, numLanes)
	pools := make([]*workerpool.WorkerPool, numLanes)
	for i := range lanes {
		lanes[i] = "lane-" + strconv.Itoa(i)
		pools[i] = workerpool.New(1)
	}
	defer func() {
		for _, p := range pools {
			p.StopWait()
		}
	}()

	seed := s.cfg.GlobalSeed
	hasher := func(lane string) uint64 {
		return xxhash.Sum64String(lane) ^ seed
	}
	hrw := rendezvous.New(lanes, hasher)

	out := make([]*PathScore, len(routes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, route := range routes {
		i, route := i, route
		laneKey := affinityKey(route)
		lane := hrw.Lookup(laneKey)

		laneIdx := 0
		for li, l := range lanes {
			if l == lane {
				laneIdx = li
				break
			}
		}

		wg.Add(1)
		pools[laneIdx].Submit(func() {
			defer wg.Done()
			score, err := s.ScorePath(ctx, route, departureTime)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warnf("scoring route %d failed: %v", i, err)
				return
			}
			out[i] = score
		})
	}

	wg.Wait()
	return out, nil
}

// affinityKey picks the route's first bridge ID as the rendezvous hash key,
// falling back to the route's identity key for a bridge-free route.
func affinityKey(route *graph.RoutePath) string {
	for _, e := range route.Edges {
		if e.IsBridge {
			return e.BridgeID
		}
	}
	return route.IdentityKey()
}
