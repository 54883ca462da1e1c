package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "View and manage monitoring alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts with the unread count",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.ListAlerts(context.Background())
		if err != nil {
			return fmt.Errorf("list failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var alertsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark one alert read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id: %s", args[0])
		}
		if err := client.MarkAlertRead(context.Background(), uint(id)); err != nil {
			return fmt.Errorf("mark read failed: %w", err)
		}
		fmt.Printf("Alert %d marked read\n", id)
		return nil
	},
}

var alertsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every unread alert read",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.MarkAllAlertsRead(context.Background()); err != nil {
			return fmt.Errorf("mark all read failed: %w", err)
		}
		fmt.Println("All alerts marked read")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsReadCmd)
	alertsCmd.AddCommand(alertsReadAllCmd)
}
