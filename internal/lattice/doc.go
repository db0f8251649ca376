// Package lattice provides the offset hexagonal lattice used by the
// rasterizer and the wave engine.
//
// Cells are stored row-major in rectangular arrays. Even rows are unshifted,
// odd rows are shifted right by half the cell spacing, and rows are
// spaced by spacing*sin(60°), so every cell has six equidistant neighbours:
//
//   - [Geometry]: maps lattice indices to continuous coordinates
//   - [Segment], [EdgeSet]: polygon edges and scanline intersection
//   - [Grid]: per-cell classification tags
//   - [Field]: per-cell scalar amplitudes
//   - [Neighbors]: row-parity dependent neighbour offsets
//
// # Thread Safety
//
// Grid and Field carry no locks. A Grid is never mutated after
// classification and may be shared by any number of readers.
package lattice
