package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dgclient "github.com/deepguard/deepguard/pkg/dgclient-go"
)

var (
	serverURL string
	apiKey    string
	adminKey  string
	client    *dgclient.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dg",
	Short: "DeepGuard CLI",
	Long: `DeepGuard CLI allows you to interact with a DeepGuard server
to analyze media URLs, run breach checks, and manage detections and alerts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		client, err = dgclient.New(dgclient.Config{
			BaseURL:  serverURL,
			APIKey:   apiKey,
			AdminKey: adminKey,
		})
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "http://localhost:8080", "DeepGuard Server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "key", "", "API Key (required for most commands)")
	rootCmd.PersistentFlags().StringVar(&adminKey, "admin-key", "", "Admin API Key (required for admin commands)")
}
