// Package coin implements fixed point currency amounts and sets of them.
//
// A Coin holds a whole and a fractional part (in 10^-9 units) of a single
// currency identified by its ticker. Coins is a normalized set of Coin
// values, sorted by ticker, without duplicates and without zero amounts.
package coin
