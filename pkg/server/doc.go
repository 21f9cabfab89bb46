// Package server exposes the render pipeline as an HTTP service.
//
// Routes:
//
//	GET  /healthz               build information
//	POST /v1/render             render one or more formats, JSON response
//	POST /v1/render/{format}    render one format, raw body
//	POST /v1/stats              summary and node names of a graph
//	POST /v1/boundary           edges with exactly one endpoint in a node set
//
// Render requests carry their inputs inline:
//
//	{
//	  "graph":     [{"nodes": ["Paris", "Bruxelles"], "weight": 2}],
//	  "positions": [{"name": "Paris", "x": 195, "y": 271}, ...],
//	  "backdrop":  [...],
//	  "formats":   ["svg", "png"]
//	}
//
// Every response carries an X-Request-ID header. Input errors map to 400
// with a JSON body naming the error code; everything else is a 500 whose
// details are logged, not returned.
package server
