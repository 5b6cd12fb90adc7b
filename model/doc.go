// Package model defines the shared data model of the substitution-plan
// pipeline: extracted tables, parsed substitution events, and the
// structured failure records that accompany them.
//
// Column meaning inside a table is positional, not labeled. Both the
// text-layer extraction path and the OCR reconstruction path materialize
// the same 6-column schema, documented once as SchemaWidth.
package model
