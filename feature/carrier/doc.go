// Package carrier integrates carrier billing feeds into the audit pipeline.
//
// It has three responsibilities:
//
//   - Clients: per-carrier API clients behind a registry keyed by carrier
//     code. Clients authenticate per request and retry transient failures
//     with a fixed backoff. The bundled clients are deterministic simulators
//     standing in for the real UPS, FedEx and DHL billing APIs.
//   - Ingestion: the Service fetches a carrier's invoice lines for a billing
//     period and stores them in the carrier_invoices table.
//   - Sources: DBSource streams stored invoice lines to the reconciliation
//     engine with keyset pagination; CSVSource streams them from a file
//     without loading it whole.
package carrier
