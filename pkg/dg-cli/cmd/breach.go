package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var breachCmd = &cobra.Command{
	Use:   "breach",
	Short: "Run breach lookups",
}

var breachEmailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Check an email address against known breaches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.CheckEmail(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("breach check failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var breachPhoneCmd = &cobra.Command{
	Use:   "phone <number>",
	Short: "Check a phone number against known breaches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.CheckPhone(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("breach check failed: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(breachCmd)
	breachCmd.AddCommand(breachEmailCmd)
	breachCmd.AddCommand(breachPhoneCmd)
}
