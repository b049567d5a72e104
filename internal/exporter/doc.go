// Package exporter renders reconciliation snapshots for export.
//
// It produces the flat ordered (label, value) headline sequence that
// summarizes a reconciliation, and writes it as a two-column CSV with an
// optional UTF-8 BOM so Excel opens it cleanly.
package exporter
