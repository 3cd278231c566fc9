// Package cleaning transforms raw transaction tables into validated,
// feature-enriched records.
//
// Clean applies, in order: exact duplicate removal, column-name
// normalization, date parsing (month-first), narrow missing-value handling
// (postal code only), type normalization, and feature derivation. Each step
// fully materializes before the next; records are never mutated downstream.
//
// Validate is a pure inspection pass producing a QualityReport. It never
// touches the records it inspects.
package cleaning
