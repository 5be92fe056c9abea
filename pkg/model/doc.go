// Package model defines the declarative field descriptors consumed by the
// schema builder, the orchestrator and the renderers. A FieldList is an
// ordered, immutable set of descriptors carrying a stable identity token so
// callers can cache derived artefacts (validation schemas, rendered chrome)
// without comparing descriptor contents.
package model
