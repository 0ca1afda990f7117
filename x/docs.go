/*
Package x contains the extensions the custody chain is built from.

Each sub-package provides handlers, decorators and models for one concern:
signature verification, wallets, switch escrow and the middleware shared by
all of them. Extensions never look up each other's authentication. They get
an Authenticator in their constructor instead.
*/
package x
