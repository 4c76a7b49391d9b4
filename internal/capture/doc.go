// Package capture turns a live document into a state value via declared
// locators.
//
// The package defines the resolver boundary (Document and Element) and the
// capture logic on top of it; it does not bind to any concrete UI
// technology. Resolution is bounded: each locator is polled until present
// or until the timeout elapses, and an unresolvable locator yields the
// NotFound sentinel rather than failing the whole capture. The sentinel is
// itself captured state, so the disappearance of an element changes the
// fingerprint and is a detectable regression.
package capture
