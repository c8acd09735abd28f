package main

import (
	"context"
	"os"
	"time"

	"github.com/aalexmrt/portfolio/internal/logging"
	"github.com/aalexmrt/portfolio/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger() {
	// CLI output goes to stdout only
	cfg := logging.DefaultConfig()
	cfg.File = ""
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}

	if err := logging.Configure(cfg); err != nil {
		cfg.Level = "info"
		_ = logging.Configure(cfg)
	}
	logger = logging.GetLogger()
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site tooling",
	Long: `Portfolio site tooling. Sends contact form messages through a running
site's /api/contact endpoint and reports build information.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information for this binary. With --server, also fetch
the build information a running site reports on /health.

Example:
  portfolio version
  portfolio version --server https://example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Portfolio version: %s", version.Info())

		serverURL, _ := cmd.Flags().GetString("server")
		if serverURL == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Checking server version..."
		s.Start()
		info, err := version.CheckServerVersion(ctx, serverURL)
		s.Stop()
		if err != nil {
			return err
		}

		logger.Info("Server version: %s", version.FormatBuildInfo(*info))
		return nil
	},
}

func init() {
	initLogger()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(contactCmd)
	contactCmd.AddCommand(contactSendCmd)

	versionCmd.Flags().String("server", "", "Base URL of a running site to query")

	contactSendCmd.Flags().String("url", "http://localhost:8080", "Base URL of the site")
	contactSendCmd.Flags().String("name", "", "Sender name")
	contactSendCmd.Flags().String("email", "", "Sender email address")
	contactSendCmd.Flags().String("message", "", "Message body (use - to read stdin)")
	contactSendCmd.Flags().String("token", "", "Turnstile token")
	contactSendCmd.Flags().Bool("bypass", false, "Send the development bypass token instead of --token")
	contactSendCmd.MarkFlagRequired("name")
	contactSendCmd.MarkFlagRequired("email")
	contactSendCmd.MarkFlagRequired("message")
}

func main() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
