// Package utils provides common utility functions for the freight audit
// service: currency parsing helpers for record ingestion and pointer helpers
// for the optional fields on invoice and charge records.
package utils
