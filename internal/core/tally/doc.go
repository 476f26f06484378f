// Package tally derives daily results, tie outcomes, cumulative standings and
// voting progress from raw vote rows.
//
// Every function is pure: callers load users, votes and tie resolutions from
// the store and pass them in. A voting date is counted in a single pass into a
// per-candidate map, and its winner is found with one max/argmax scan over
// that map.
package tally
