// Package manifest moves package lists in and out of the service: CSV import
// with tolerant column matching, CSV export, the import template, and the plain
// text loading report.
package manifest
