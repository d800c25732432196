// Package exporter writes production tables as CSV or XLSX downloads.
//
// WriteCSV streams a table through encoding/csv, optionally prefixed with a
// UTF-8 BOM so spreadsheet tools detect the encoding. WriteXLSX produces a
// single sheet workbook with excelize, writing numeric cells as numbers.
//
// Example usage:
//
//	err := exporter.WriteCSV(w, dataset.Table, exporter.WriteOptions{BOMPrefix: true})
//	err = exporter.WriteXLSX(w, dataset.Table)
package exporter
