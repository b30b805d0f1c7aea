// Package reconciliation exposes the audit engine over HTTP and persists its
// reports.
//
// A run reads carrier invoices and customer charges from the billing database,
// executes a batched reconciliation pass, and archives the resulting report as
// a JSON object in the storage bucket under reports/<id>.json. Archived
// reports can be listed, fetched and deleted afterwards.
//
// The audit endpoint evaluates a single carrier invoice line against the
// current customer charges without producing a report; the charge index it
// needs is cached with a TTL so bursts of audits share one database read.
package reconciliation
