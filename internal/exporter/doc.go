// Package exporter renders the cleaned animal table to CSV and XLSX,
// either to disk or straight into an HTTP response. Column order and
// value formatting are fixed here so both formats always agree.
package exporter
