// Package analysis finds the resonant frequencies of a recorded trace.
//
// A probe placed in the interior records the superposition of the
// membrane's normal modes; peaks of its power spectrum sit at the mode
// frequencies:
//
//	peaks := analysis.DominantFrequencies(series, dt, 5)
package analysis
