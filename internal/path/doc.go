// Package path provides the addressable location type shared by every part of
// the verifier.
//
// A Path is an ordered, non-empty sequence of steps. Each step is a field name
// plus an optional zero-based repetition index, present only when the field
// occurs more than once under its parent. Attribute terminals use a step name
// prefixed with "@".
//
// # Canonical Form
//
//	path = step ('.' step)*
//	step = name ('[' digits ']')?
//	name = ident | '@' ident
//
// Inside a name the reserved characters '.', '[', ']' and the backslash are written
// with a leading backslash, so the JSON key "com.example" becomes the step
// `com\.example`.
//
// Examples:
//   - "trade.tradeHeader.partyTradeIdentifier[1].tradeId"
//   - "trade.swap.swapStream[0].payerPartyReference.@href"
//
// Parse and String are inverses for every path the tree extractor produces.
package path
