/*
Package custody defines the interfaces used throughout the time-locked custody
application: storage, transactions, handlers, conditions and addresses. It
also carries the block context helpers (height, chain id, block time, logger)
and the deterministic address derivation used for program controlled
holdings.

The switch lifecycle itself lives in x/deadswitch, balances are kept by
x/cash and signatures are verified by x/sigs. The app package glues all of
them into a tendermint ABCI application.

We pass context through context.Context between app, decorators, and
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package custody
