package driven

// Normaliser cleans abstract text before chunking.
//
// Normalise is a total function over strings: it never errors and maps
// empty input to empty output. It must be idempotent so re-ingesting an
// already-cleaned abstract is harmless.
type Normaliser interface {
	// Normalise strips citation artifacts and boilerplate, collapses
	// whitespace, removes unsafe characters, and trims.
	Normalise(text string) string
}
