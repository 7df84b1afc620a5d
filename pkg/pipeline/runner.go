package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orbifold/cytoconv/pkg/cache"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/graph"
	"github.com/orbifold/cytoconv/pkg/identifier"
	"github.com/orbifold/cytoconv/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeElements = "elements"
	keyTypeGraph    = "graph"
)

// Runner encapsulates conversions with caching.
//
// Element results are cached by graph hash, generator name and prefix, so a
// repeated conversion of the same graph returns the ids generated the first
// time until the entry expires, rather than fresh ones. Use Options.Refresh
// or a nil cache when every call must mint new ids. A per-call generator
// (Options.IDs) starts over on every call, so "sequence" ids repeat from
// prefix+"1" across calls.
//
// The Runner is stateless except for the cache, converter and logger.
// Multiple goroutines can safely use the same Runner.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Converter *cyto.Converter
	TTL       time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// A nil cache disables caching: nothing is read or written and no cache
// hooks fire.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		Converter: &cyto.Converter{},
		TTL:       cache.ElementsTTL,
	}
}

// ElementsResult is the outcome of [Runner.Elements].
type ElementsResult struct {
	Elements  []cyto.Element
	GraphHash string
	CacheHit  bool
	Stats     Stats
}

// GraphResult is the outcome of [Runner.Graph].
type GraphResult struct {
	Graph        *cyto.Graph
	ElementsHash string
	CacheHit     bool
	Stats        Stats
}

// Elements converts g into an element list. A nil graph yields a nil list.
func (r *Runner) Elements(ctx context.Context, g *cyto.Graph, opts Options) (res *ElementsResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return &ElementsResult{}, nil
	}

	start := time.Now()
	hooks := observability.Conversion()
	hooks.OnConvertStart(ctx, observability.DirectionToElements, len(g.Nodes)+len(g.Edges))
	defer func() {
		nodes, edges := 0, 0
		if res != nil {
			nodes, edges = res.Stats.NodeCount, res.Stats.EdgeCount
		}
		hooks.OnConvertComplete(ctx, observability.DirectionToElements, nodes, edges, time.Since(start), err)
	}()

	hash, err := cache.HashJSON(g)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ElementsKey(hash, cache.ElementsKeyOpts{IDs: opts.IDs, Prefix: opts.IDPrefix})

	if !opts.Refresh {
		if els, ok := r.cachedElements(ctx, key); ok {
			res = &ElementsResult{Elements: els, GraphHash: hash, CacheHit: true}
			res.Stats = countElements(els, time.Since(start))
			r.Logger.Debug("elements from cache", "graph", g.ID, "elements", len(els))
			return res, nil
		}
	}

	els, err := r.converter(opts).ToElements(g)
	if err != nil {
		return nil, err
	}
	if data, err := graph.MarshalElements(els, graph.JSON); err == nil {
		r.store(ctx, keyTypeElements, key, data)
	}

	res = &ElementsResult{Elements: els, GraphHash: hash}
	res.Stats = countElements(els, time.Since(start))
	r.Logger.Info("converted graph to elements",
		"graph", g.ID,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.Duration)
	return res, nil
}

// Graph rebuilds a graph from an element list. The result carries
// opts.GraphID when set and a freshly generated id otherwise.
func (r *Runner) Graph(ctx context.Context, elements []cyto.Element, opts Options) (res *GraphResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Conversion()
	hooks.OnConvertStart(ctx, observability.DirectionToGraph, len(elements))
	defer func() {
		nodes, edges := 0, 0
		if res != nil {
			nodes, edges = res.Stats.NodeCount, res.Stats.EdgeCount
		}
		hooks.OnConvertComplete(ctx, observability.DirectionToGraph, nodes, edges, time.Since(start), err)
	}()

	hash, err := cache.HashJSON(elements)
	if err != nil {
		return nil, err
	}
	cacheable := opts.GraphID != ""
	key := r.Keyer.GraphKey(hash, cache.GraphKeyOpts{ID: opts.GraphID})

	if cacheable && !opts.Refresh {
		if g, ok := r.cachedGraph(ctx, key); ok {
			res = &GraphResult{Graph: g, ElementsHash: hash, CacheHit: true}
			res.Stats = Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount(), Duration: time.Since(start)}
			r.Logger.Debug("graph from cache", "graph", g.ID)
			return res, nil
		}
	}

	g, err := r.converter(opts).ToQwieryGraph(elements)
	if err != nil {
		return nil, err
	}
	if opts.GraphID != "" {
		g.ID = opts.GraphID
	}
	if cacheable {
		if data, err := graph.MarshalGraph(g, graph.JSON); err == nil {
			r.store(ctx, keyTypeGraph, key, data)
		}
	}

	res = &GraphResult{Graph: g, ElementsHash: hash}
	res.Stats = Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount(), Duration: time.Since(start)}
	r.Logger.Info("converted elements to graph",
		"graph", g.ID,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.Duration)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) converter(opts Options) *cyto.Converter {
	if opts.IDs != "" {
		if gen, ok := identifier.FromName(opts.IDs, opts.IDPrefix); ok {
			return cyto.NewConverter(gen)
		}
	}
	if r.Converter == nil {
		return &cyto.Converter{}
	}
	return r.Converter
}

func (r *Runner) cachedElements(ctx context.Context, key string) ([]cyto.Element, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeElements)
		return nil, false
	}
	els, err := graph.UnmarshalElements(data, graph.JSON)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeElements)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeElements)
	return els, true
}

func (r *Runner) cachedGraph(ctx context.Context, key string) (*cyto.Graph, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}
	g, err := graph.UnmarshalGraph(data, graph.JSON)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeGraph)
	return g, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func countElements(els []cyto.Element, d time.Duration) Stats {
	s := Stats{Duration: d}
	for _, el := range els {
		switch {
		case el.IsNode():
			s.NodeCount++
		case el.IsEdge():
			s.EdgeCount++
		}
	}
	return s
}
