// Package projection models the collaborator boundary around reconciliation:
// what ingestion reports about fields it could not map, and what projection
// returns when it cannot produce a document for a target schema.
package projection
