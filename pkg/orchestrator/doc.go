// Package orchestrator wires locale negotiation, bundle loading, the
// hydration scanner and the delegated form handlers into a single Boot call.
package orchestrator
