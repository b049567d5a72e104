// Package dataprocessing turns uploaded report files into raw records for
// the reconcile package. It understands the two formats affiliate networks
// actually ship: header-row CSV and xlsx workbooks.
//
// Parsing is deliberately tolerant: ragged rows are padded, cells are
// trimmed, fully empty rows are skipped. Interpretation of the cells
// (aliases, coercion) is not this package's job.
package dataprocessing
