// Package exporter writes aggregation results to their per-run artifacts:
// one CSV file per query and a combined XLSX workbook with one sheet per
// query. Output locations come from an explicit config.Paths value.
package exporter
