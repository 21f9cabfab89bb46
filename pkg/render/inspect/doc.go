// Package inspect reads rendered SVG back and checks its animation chain.
//
// [Parse] collects the shapes and <animate> elements of a document into a
// [Drawing]. [Drawing.Timeline] rebuilds the typed timeline from the SMIL
// attributes, and [Check] verifies the reveal loop: reveals numbered 1..N in
// line order, the first one starting at zero and after the fade, a single
// fade keyed to the last reveal and no dangling references.
//
// Parsing uses [github.com/beevik/etree].
package inspect
