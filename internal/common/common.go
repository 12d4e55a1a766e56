package common

// UnknownStr is the name rendered for out-of-range enum values.
const UnknownStr = "unknown"
