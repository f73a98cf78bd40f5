// Package mock provides a deterministic backend for testing code built on the
// language model factory.
//
// The mock returns canned responses (the "responses" option, or AddResponse)
// in order and cycles through them, can be primed with errors, simulates
// latency and records every prompt it receives.
package mock
