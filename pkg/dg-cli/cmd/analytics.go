package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var trendDays int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the analytics summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.GetSummary(context.Background())
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the daily trend series",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.GetTrends(context.Background(), trendDays)
		if err != nil {
			return fmt.Errorf("trends failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().IntVar(&trendDays, "days", 7, "Window size in days (1-90)")
}
