// Package cli is the thinnest possible front end: it parses intents and
// dispatches them to the engines. All state lives below this layer.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/in1011558-byte/book-order-system/internal/app"
	"github.com/in1011558-byte/book-order-system/internal/config"
	"github.com/in1011558-byte/book-order-system/internal/util"
)

// RootOptions holds global flags and the composed client shared by all
// subcommands.
type RootOptions struct {
	ConfigPath string
	App        *app.App
}

// NewRootCommand creates the bookorder root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "bookorder",
		Short:         "Storefront client for the book ordering system",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			util.InitLogger(cfg.LogLevel)
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			opts.App = a
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path (default bookorder.yaml)")

	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newBookCommand(opts))
	cmd.AddCommand(newCartCommand(opts))
	cmd.AddCommand(newOrderCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newWhoamiCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAdminCommand(opts))

	return cmd
}
