package database

import "gorm.io/gorm"

// BillingTables are the tables the audit service reads from.
var BillingTables = []string{"customer_charges", "carrier_invoices"}

// MissingBillingTables returns the billing tables absent from the connected
// schema. An empty result means the schema is usable; a non-empty one is a
// startup warning, not a fatal error, since CSV-backed runs need no database.
func MissingBillingTables(db *gorm.DB) []string {
	missing := make([]string, 0)
	for _, table := range BillingTables {
		if !db.Migrator().HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}
