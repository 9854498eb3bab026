package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg *Config
	app *clientApp
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfgFile string
	defaults := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "olymp",
		Short: "CLI tool for the Olymp entry server",
		Long: `olymp talks to an Olymp entry server.

It reads and appends raw entries, shows the seat report of the configured
registration resource, and registers or withdraws participants.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded

			app, err = newClientApp(cmd, cfg)
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default: ~/.config/olymp/config.yaml)")
	flags.String("server", defaults.ServerURL, "Server URL (env: OLYMP_SERVER)")
	flags.String("admin-user", "", "Admin user for private data (env: OLYMP_ADMIN_USER)")
	flags.String("admin-password", "", "Admin password (env: OLYMP_ADMIN_PASSWORD)")
	flags.String("registration-resource", "", "Resource holding registrations (env: OLYMP_REGISTRATION_RESOURCE)")
	flags.String("catalog", "", "Catalog file or URL, compiled-in catalog if empty (env: OLYMP_CATALOG)")
	flags.StringP("output", "o", defaults.Output, "Output format: text, json")
	flags.BoolP("verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newHashPasswordCmd())
	rootCmd.AddCommand(newEntriesCmd())
	rootCmd.AddCommand(newRoundsCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newWithdrawCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
