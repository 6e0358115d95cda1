// Package resolver implements the pure state transitions of the rules
// engine: breaching nodes, discovering hidden topology, moving along links,
// and switching circuits.
//
// Every resolver takes the current execution state plus a player input and
// returns a brand-new state and a structured outcome. The input state is
// never mutated; rejected inputs return it untouched. Messages on outcomes
// are diegetic: difficulty thresholds and fail modes never leak to the
// player.
package resolver
