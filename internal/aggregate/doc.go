// Package aggregate executes the fixed catalog of analytical queries over
// cleaned transaction records.
//
// Each query is a declarative descriptor (grouping key, aggregate columns,
// sort order, row limit) executed by one generic engine, so the catalog can
// be tested uniformly and extended without new aggregation code. Queries are
// pure: they read the records and produce fresh result tables.
package aggregate
