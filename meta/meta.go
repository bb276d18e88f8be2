// meta/meta.go
package meta

// DEPTH defines the default search depth of a think.
const DEPTH = 5

// NODES defines the default soft node budget of a think.
const NODES = 300000

// DISTURB defines the number of random swaps applied to each action list.
const DISTURB = 100

// MAX_TURNS defines the number of turns after which a game is abandoned.
const MAX_TURNS = 300
