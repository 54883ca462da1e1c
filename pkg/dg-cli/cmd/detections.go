package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var detectionsCmd = &cobra.Command{
	Use:   "detections",
	Short: "Manage stored detection records",
}

var detectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List detection records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.ListDetections(context.Background())
		if err != nil {
			return fmt.Errorf("list failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var detectionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one detection record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}
		resp, err := client.GetDetection(context.Background(), uint(id))
		if err != nil {
			return fmt.Errorf("get failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var detectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a detection record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}
		if err := client.DeleteDetection(context.Background(), uint(id)); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Printf("Deleted detection %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectionsCmd)
	detectionsCmd.AddCommand(detectionsListCmd)
	detectionsCmd.AddCommand(detectionsGetCmd)
	detectionsCmd.AddCommand(detectionsDeleteCmd)
}
