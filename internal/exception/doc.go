// Package exception provides the two caller-supplied path sets consulted
// during reconciliation:
//
//   - expected-unmapped: paths known from ingestion to have no home in the
//     canonical model, so projection cannot reproduce them;
//   - excluded: paths deliberately ignored for a schema pair.
//
// A Set holds exact paths, prefix entries and glob patterns. Prefixes and
// globs are evaluated against the canonical string form: a prefix matches a
// path whose canonical form starts with it at a step boundary ('.' or '['),
// so "doc.party" covers "doc.party.id" and "doc.party[3].id" alike.
//
// # Glob Syntax
//
// Globs use '.' as the step separator:
//   - "*" matches within one step ("trade.*Header.tradeDate")
//   - "**" matches any number of steps ("**.@href")
//   - "[n]" is a literal index and "[*]" matches any index ("party[*].partyId")
//
// Sets are immutable once built and safe for concurrent use.
package exception
