package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Answer a research question from indexed papers",
	Long: `Answers a research question using only the indexed abstracts.
The answer cites the arXiv papers it draws on; questions with no
sufficiently similar papers get an explicit insufficient-evidence
response instead of a fabricated answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	if queryService == nil {
		if err := initServices(cmd); err != nil {
			return err
		}
	}

	answer, err := queryService.Query(cmd.Context(), question)
	if err != nil {
		if domain.IsValidation(err) {
			return err
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.References) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("References:")
	for i, ref := range answer.References {
		cmd.Printf("  [%d] %s (arXiv:%s, %.2f)\n", i+1, ref.Title, ref.ArxivID, ref.Score)
	}
	return nil
}
