// Package pipeline sequences the batch run: extract, clean, validate, load,
// aggregate, export. Stages execute strictly in order, each consuming its
// predecessor's output; the first unrecoverable error aborts the run and no
// partial artifacts are considered usable.
package pipeline
