package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyzePublic bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a media URL for deepfake indicators",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if analyzePublic {
			resp, err := client.AnalyzeURLPublic(ctx, args[0])
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			return enc.Encode(resp)
		}

		resp, err := client.AnalyzeURL(ctx, args[0])
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzePublic, "public", false, "Use the public endpoint (no record is stored)")
}
