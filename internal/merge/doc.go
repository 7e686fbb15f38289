// Package merge reassembles subtitle fragments transcribed from overlapping
// windows into one continuous timeline.
//
// Fragments are merged strictly in the order given. Each fragment's entries
// are timed relative to its own window; merging shifts them onto the global
// timeline and drops the entries of earlier fragments that fall into the
// region the next fragment transcribes again.
package merge
