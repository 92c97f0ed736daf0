// Package kernel provides the shared domain primitives of the fulfillment core.
//
// The package includes:
//   - UUID: a validated, immutable identifier used for orders
//
// The zero value of every primitive is invalid; values must be built through
// their constructors so that Validate can tell them apart.
package kernel
