package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
	"github.com/candela-labs/scholar-cli/internal/logger"
)

// InsufficientEvidenceAnswer is returned when no matches cleared the
// retrieval threshold. It is honest about the gap instead of fabricating
// an answer, and no generation call is made to produce it.
const InsufficientEvidenceAnswer = "Based on available research literature, I could not find " +
	"sufficient relevant studies to address this query. " +
	"Please try rephrasing your question or consult additional sources."

// answerPreface is the opening the prompt mandates for every generated answer.
const answerPreface = "Based on available research literature..."

// promptTemplate constrains generation to the supplied context. The two
// placeholders are the question and the context block.
const promptTemplate = `You are a research assistant helping researchers understand scientific literature.

RULES:
1. Use ONLY the research papers provided below - do not add external knowledge
2. Always start with "%s"
3. Cite arXiv IDs when referencing findings (e.g., "According to arXiv:2301.12345...")
4. If the research doesn't contain enough information, clearly state this
5. Do NOT provide clinical advice or treatment recommendations
6. Do NOT hallucinate or make up information
7. Be honest about uncertainties and limitations

REMEMBER: This is a research support tool.

RESEARCHER'S QUESTION:
%s

RELEVANT RESEARCH PAPERS:
%s

Please provide a comprehensive response based on the research above, with proper citations.`

// synthesise builds a grounded prompt from the matches and invokes
// generation. Empty matches short-circuit to the fixed fallback answer;
// generation failures propagate with their cause.
func (s *QueryService) synthesise(ctx context.Context, question string, matches []domain.Match) (string, error) {
	if len(matches) == 0 {
		logger.Warn("No relevant research found for query")
		return InsufficientEvidenceAnswer, nil
	}

	prompt := buildPrompt(question, buildContext(matches))
	logger.Debug("Generating answer from %d matches (prompt %d chars)", len(matches), len(prompt))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	logger.Debug("Generated answer (%d chars)", len(text))

	return text, nil
}

// buildContext concatenates one labelled section per match, in match
// order, so the model can cite each paper by its arXiv ID.
func buildContext(matches []domain.Match) string {
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[Research Paper %d]\narXiv ID: %s\nTitle: %s\nContent: %s\n",
			i+1, m.ArxivID, m.Title, m.Text)
	}
	return b.String()
}

// buildPrompt embeds the question and context block into the constrained
// prompt template verbatim.
func buildPrompt(question, context string) string {
	return fmt.Sprintf(promptTemplate, answerPreface, question, context)
}
