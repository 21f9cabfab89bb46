// Package timeline models edge animations as an explicit, typed timeline.
//
// # Overview
//
// An animated edge diagram is a small cyclic state machine: edges are
// revealed one after another, the whole set fades out, and the cycle starts
// again. Instead of building SMIL begin attributes by string concatenation,
// this package describes the machine as data:
//
//   - An [Interval] animates one attribute of one target for a duration.
//   - A [Trigger] says when an interval starts: [AtZero], [EndOf] another
//     interval, [BeginOf] another interval, or [Any] of several triggers.
//
// The data can be validated ([Timeline.Validate]), scheduled on an absolute
// clock ([Timeline.Schedule]) and compiled to SMIL begin values
// ([Trigger.Begin]) by the SVG sink.
//
// # The Reveal Loop
//
// [Loop] builds the timeline used for animated edges. For n edges:
//
//	edge1   begin = 0s;fade.end   0.2s   stroke-width 0 → 5
//	edge2   begin = edge1.end     0.2s   stroke-width 0 → 5
//	...
//	edgeN   begin = edge(N-1).end 0.2s   stroke-width 0 → 5
//	fade    begin = edgeN.end     4s     stroke-width 10 → 0   (on edge N)
//	        begin = fade.begin    4s     stroke-width 10 → 0   (on every other edge)
//
// With n == 0 the timeline is empty and references nothing.
//
// # Parsing
//
// [ParseBegin] is the inverse of [Trigger.Begin] for the subset of SMIL this
// package emits, which lets rendered documents be checked after the fact.
package timeline
