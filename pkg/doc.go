// Package pkg provides the libraries behind cytoconv, a converter between
// generic graphs and Cytoscape.js element lists.
//
// # Overview
//
// A generic graph is an id plus ordered node and edge attribute bags. A
// Cytoscape element list is a flat array of {group, data, position}
// records. The pkg directory is organized into these areas:
//
//  1. [cyto] - Conversion core (nodes, edges, graphs, classification)
//  2. [graph] - JSON and YAML documents for graphs and element lists
//  3. [pipeline] - Cached, instrumented conversions
//  4. [cache], [store] - Result caching and graph storage backends
//  5. [render] - DOT and SVG export of element lists
//
// # Architecture
//
//	graph file / HTTP body
//	         ↓
//	    [graph] package (decode)
//	         ↓
//	    [pipeline] package (cache lookup, [cyto] conversion, hooks)
//	         ↓
//	    element list / graph, optionally kept in [store]
//
// # Quick Start
//
//	import (
//	    "github.com/orbifold/cytoconv/pkg/cyto"
//	    "github.com/orbifold/cytoconv/pkg/graph"
//	)
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	els, _ := cyto.ToElements(g)
//	back, _ := cyto.ToQwieryGraph(els)
//	back.ID = g.ID
//
// Supporting packages: [attrs] (attribute bags), [identifier] (id
// generation), [errors] (coded errors), [config] (TOML settings),
// [observability] and [metrics] (hooks and Prometheus), [buildinfo].
//
// [cyto]: github.com/orbifold/cytoconv/pkg/cyto
// [graph]: github.com/orbifold/cytoconv/pkg/graph
// [pipeline]: github.com/orbifold/cytoconv/pkg/pipeline
// [cache]: github.com/orbifold/cytoconv/pkg/cache
// [store]: github.com/orbifold/cytoconv/pkg/store
// [render]: github.com/orbifold/cytoconv/pkg/render
// [attrs]: github.com/orbifold/cytoconv/pkg/attrs
// [identifier]: github.com/orbifold/cytoconv/pkg/identifier
// [errors]: github.com/orbifold/cytoconv/pkg/errors
// [config]: github.com/orbifold/cytoconv/pkg/config
// [observability]: github.com/orbifold/cytoconv/pkg/observability
// [metrics]: github.com/orbifold/cytoconv/pkg/metrics
// [buildinfo]: github.com/orbifold/cytoconv/pkg/buildinfo
package pkg
