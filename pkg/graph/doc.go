// Package graph reads and writes generic graphs and element lists.
//
// Two document shapes are supported:
//
//   - [cyto.Graph]: the generic graph model, an object with "id", "nodes"
//     and "edges"
//   - []cyto.Element: Cytoscape's flat element array
//
// # Formats
//
// Documents are encoded as JSON or YAML. File helpers pick the format from
// the extension (.json, .yaml, .yml; no extension means JSON):
//
//	g, _ := graph.ReadGraphFile("graph.yaml")        // File → Graph
//	graph.WriteElementsFile(elements, "out.json")    // Elements → File
//	data, _ := graph.MarshalGraph(g, graph.JSON)     // Graph → []byte
//	els, _ := graph.UnmarshalElements(data, graph.JSON)
//
// JSON numbers decode as float64 and YAML integers as int; the converters
// in package cyto accept both.
//
// # Errors
//
// Malformed documents fail with errors.ErrCodeInvalidInput, unknown file
// extensions with errors.ErrCodeInvalidFormat and missing files with
// errors.ErrCodeFileNotFound.
package graph
