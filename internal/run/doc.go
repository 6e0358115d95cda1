// Package run holds the per-player execution state of a grid run: the
// player's position, per-node and per-link flags, circuit-wide lockout and
// completion maps, accumulated warnings, and the append-only timeline.
//
// State values are treated as immutable by the rules engine: resolvers
// clone the state they receive and return a brand-new value. Nothing in
// this package mutates a caller's state in place.
package run
