// Package abstract normalises scientific abstract text before chunking.
package abstract

import (
	"regexp"
	"strings"

	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	// citationPattern matches inline citation artifacts that earlier
	// generated answers leave behind when abstracts are re-ingested.
	citationPattern = regexp.MustCompile(`(?i)\(According to\s+arXiv:[^)]+\)`)

	// boilerplatePatterns are discourse openers stripped at line starts.
	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^Based on available research literature,\s*`),
		regexp.MustCompile(`(?im)^In summary,\s*`),
		regexp.MustCompile(`(?im)^Furthermore,\s*`),
		regexp.MustCompile(`(?im)^For instance,\s*`),
	}

	whitespacePattern = regexp.MustCompile(`\s+`)

	// unsafePattern matches everything outside the safe set: word
	// characters (Unicode letters and digits), whitespace, and the
	// punctuation scientific prose needs.
	unsafePattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?()-]`)
)

// Normaliser cleans abstract text. It is stateless and safe for
// concurrent use.
type Normaliser struct{}

// New creates a new abstract normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise strips citation artifacts and boilerplate phrases, collapses
// whitespace runs to single spaces, removes unsafe characters, and trims.
// Empty input yields empty output, and normalising twice equals
// normalising once.
func (n *Normaliser) Normalise(text string) string {
	// A single pass can uncover boilerplate that was shielded from the
	// line anchor by leading whitespace or a stripped character, so the
	// pipeline runs until the text stabilises. Every changing pass
	// shortens the text, so the loop terminates.
	for {
		cleaned := pass(text)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

func pass(text string) string {
	text = citationPattern.ReplaceAllString(text, "")

	for _, pattern := range boilerplatePatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	text = whitespacePattern.ReplaceAllString(text, " ")
	text = unsafePattern.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
