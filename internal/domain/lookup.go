package domain

// LookupResult is the display-ready outcome of a successful word lookup:
// the main term plus up to one synonym and one antonym. Records here are
// candidates; they are not written to the dictionary until save time,
// except when Resolved is set (the dedup fast path returned a stored row).
type LookupResult struct {
	Main    WordRecord
	Synonym *WordRecord
	Antonym *WordRecord

	// AlreadySaved reports whether the current user has the main word in
	// their saved list.
	AlreadySaved bool

	// Resolved is true when Main came from the dictionary store rather than
	// a fresh model response; its ID is then a real dictionaryId.
	Resolved bool
}
