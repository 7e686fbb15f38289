// Package window computes the overlapping windows a long timeline is cut
// into before transcription, and the file naming convention that lets the
// resulting fragments be put back together in order.
//
// Split is a pure function of its inputs: the returned sequence holds no
// state and may be ranged over any number of times.
package window
