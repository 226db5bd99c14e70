package enumpath

import (
	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/rterr"
)

// EnumeratePaths returns up to cfg.MaxPaths routes from start to end,
// selecting DFS, Yen K-shortest, or auto-choosing between them per §4.2.
// When cfg.EnableCaching is true and cache is non-nil, results are memoized
// under the graph's signature plus cfg.
func EnumeratePaths(g *graph.Graph, start, end graph.NodeID, cfg PathEnumConfig, cache *Cache) ([]*graph.RoutePath, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !g.Contains(start) {
		return nil, rterr.NewEnumError("enumerate_paths", rterr.NodeNotFound(string(start)))
	}
	if !g.Contains(end) {
		return nil, rterr.NewEnumError("enumerate_paths", rterr.NodeNotFound(string(end)))
	}
	if start == end {
		return nil, rterr.NewEnumError("enumerate_paths", rterr.InvalidPath("start and end must differ"))
	}

	var cacheKey CacheKey
	if cfg.EnableCaching && cache != nil {
		cacheKey = NewCacheKey(g.Signature(), start, end, cfg)
		if cached, ok := cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	mode := resolveMode(cfg, len(g.NodeIDs()), len(g.Edges()))

	var (
		results []*graph.RoutePath
		err     error
	)
	switch mode {
	case DFS:
		results, err = dfsEnumerate(g, start, end, cfg)
	case YenKShortest:
		results, err = yenEnumerate(g, start, end, cfg)
	default:
		results, err = dfsEnumerate(g, start, end, cfg)
	}
	if err != nil {
		return nil, rterr.NewEnumError("enumerate_paths", err)
	}

	if cfg.MaxTravelTime > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.TotalTravelTime <= cfg.MaxTravelTime {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if cfg.MaxTimeOverShortest > 0 && len(results) > 0 {
		shortest := results[0].TotalTravelTime
		filtered := results[:0]
		for _, r := range results {
			if r.TotalTravelTime <= shortest+cfg.MaxTimeOverShortest {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if cfg.EnableCaching && cache != nil {
		cache.Put(cacheKey, results)
	}
	return results, nil
}
