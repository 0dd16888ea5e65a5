// Package integration exercises several storefront instances end to end:
// shared snapshot slot, shared sync topic, edits flowing between them over
// the public and admin HTTP surfaces.
package integration
