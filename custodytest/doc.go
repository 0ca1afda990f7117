// Package custodytest provides mocks and helpers for testing handlers,
// decorators and models of the custody application.
package custodytest
