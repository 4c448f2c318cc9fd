package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestMaxPapers int

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and index recent arXiv papers",
	Long: `Fetches recent abstracts from arXiv, cleans and chunks them,
generates embeddings and persists the chunks into the vector store.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVarP(&ingestMaxPapers, "max-papers", "n", 10, "maximum number of papers to fetch")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		if err := initServices(cmd); err != nil {
			return err
		}
	}

	stats, err := ingestService.Ingest(cmd.Context(), ingestMaxPapers)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Println(stats.Message)
	return nil
}
