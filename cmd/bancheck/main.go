// Package main is the entrypoint for the bancheck CLI.
package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/flamexhub/bancheck/internal/client"
	"github.com/flamexhub/bancheck/internal/config"
)

// Build-time variables set via ldflags.
var (
	Version   = "2.0.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bancheck",
		Short: "Free Fire ban status lookup",
		Long: `bancheck is a command line client for the Free Fire ban check API.

It queries the ban status of player accounts through a ban check
server and prints the API response as JSON.

Run 'bancheck check <uid>' to look up a player.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("server", "", "ban check server URL (default from config file)")
	rootCmd.PersistentFlags().Duration("timeout", client.DefaultTimeout, "request timeout")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(),
		newHealthCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// apiClient builds the API client from flags and the config file. The
// --server flag wins over the config file, which wins over the default.
func apiClient(cmd *cobra.Command, cfg *config.CLIConfig) *client.Client {
	serverURL, _ := cmd.Flags().GetString("server")
	if serverURL == "" {
		serverURL = cfg.ServerURL
	}
	if serverURL == "" {
		serverURL = config.DefaultServerURL
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if !cmd.Flags().Changed("timeout") && cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return client.New(strings.TrimSuffix(serverURL, "/"), timeout)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bancheck %s\n", Version)
			fmt.Printf("  Commit:     %s\n", Commit)
			fmt.Printf("  Built:      %s\n", BuildDate)
			fmt.Printf("  Go version: %s\n", runtime.Version())
			fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newCheckCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "check <uid>",
		Short: "Check the ban status of a player",
		Long: `Check the ban status of a Free Fire player by numeric UID.

The response is printed as JSON. Use --lang to request the upstream
message in another language (for example 'id' or 'th').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], lang)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "response language (default from config file, then \"en\")")

	return cmd
}

func runCheck(cmd *cobra.Command, uid, lang string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if lang == "" {
		lang = cfg.Lang
	}

	envelope, err := apiClient(cmd, cfg).CheckBan(uid, lang)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	fmt.Println(string(out))

	return nil
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health and version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			info, err := apiClient(cmd, cfg).Health()
			if err != nil {
				return err
			}

			fmt.Printf("Status:     %s\n", info.Status)
			fmt.Printf("Message:    %s\n", info.Message)
			fmt.Printf("Version:    %s\n", info.Version)
			fmt.Printf("API source: %s\n", info.APISource)

			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetServerCmd(),
		newConfigSetLangCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDefault()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			configPath, _ := config.DefaultConfigPath()
			fmt.Printf("Config file: %s\n", configPath)
			fmt.Println()

			if !cfg.IsConfigured() {
				fmt.Printf("No server configured. Using default: %s\n", config.DefaultServerURL)
				fmt.Println("Run 'bancheck config set-server <url>' to change it.")
				return nil
			}

			fmt.Printf("Server URL: %s\n", cfg.ServerURL)
			if cfg.Lang != "" {
				fmt.Printf("Language:   %s\n", cfg.Lang)
			}
			if cfg.TimeoutSeconds > 0 {
				fmt.Printf("Timeout:    %ds\n", cfg.TimeoutSeconds)
			}

			return nil
		},
	}
}

func newConfigSetServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-server <url>",
		Short: "Set the server URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL := args[0]

			// Validate URL
			parsed, err := url.Parse(serverURL)
			if err != nil {
				return fmt.Errorf("invalid server URL: %w", err)
			}
			if parsed.Scheme != "http" && parsed.Scheme != "https" {
				return fmt.Errorf("server URL must use http or https scheme")
			}

			cfg, err := config.LoadDefault()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cfg.ServerURL = strings.TrimSuffix(serverURL, "/")

			if err := cfg.SaveDefault(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Printf("Server URL set to: %s\n", cfg.ServerURL)
			return nil
		},
	}
}

func newConfigSetLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-lang <code>",
		Short: "Set the default response language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := strings.ToLower(strings.TrimSpace(args[0]))
			if lang == "" {
				return fmt.Errorf("language code cannot be empty")
			}

			cfg, err := config.LoadDefault()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			cfg.Lang = lang

			if err := cfg.SaveDefault(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Printf("Default language set to: %s\n", cfg.Lang)
			return nil
		},
	}
}
