/*
Package cash is the coin ledger. It keeps one wallet per address and is the
only place where balances change.

Other extensions move funds through a Controller: MoveCoins between two
wallets, TransferIn to deposit into a holding wallet, and Sweep to empty a
holding wallet at once. Every operation either applies completely or leaves
the store untouched.
*/
package cash
