// Package database handles billing database connections and schema checks.
//
// It provides a wrapper around GORM to configure MySQL connections based on
// the application's configuration, with sane pool limits and I/O timeouts.
//
// # Connect
//
// Connect establishes and pings a connection. Startup treats a failed
// connection as a warning rather than a fatal error: CSV-backed
// reconciliation runs work without a database.
//
// # Schema Check
//
// MissingBillingTables verifies that the tables the audit service reads
// (customer_charges, carrier_invoices) exist in the connected schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("billing database unavailable", zap.Error(err))
//	}
package database
