// Package testid assigns human-readable test identifiers to component tags.
//
// A Session owns all per-file state: the AllocationTable that numbers
// identifiers and the HierarchyStack that supplies ancestor context. Create
// one Session per file; a Session must not be shared between goroutines.
//
// Rewrite locates target tags with the scanner package, derives a base name
// for each tag with a Describer, allocates a unique identifier from it and
// inserts the identifier attribute into the tag. The output is built by
// copying source segments forward into a fresh buffer, so the original text
// outside the inserted attributes is preserved byte for byte.
package testid
