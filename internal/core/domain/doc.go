// Package domain contains the core business entities for the Plug client:
// stored credentials, cached bearer tokens, tabular query results and the
// query history. It has no dependencies on adapters or external services.
package domain
