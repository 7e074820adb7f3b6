package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/export"
)

func newAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}
	cmd.AddCommand(newAdminLoginCommand(opts))
	cmd.AddCommand(newAdminOrdersCommand(opts))
	cmd.AddCommand(newAdminCustomersCommand(opts))
	cmd.AddCommand(newAdminCustomerCommand(opts))
	cmd.AddCommand(newAdminExportCommand(opts))
	return cmd
}

func newAdminLoginCommand(opts *RootOptions) *cobra.Command {
	var (
		username string
		password string
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.App.Session.AdminLogin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", sess.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminOrdersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.App.Admin.Load(cmd.Context()); err != nil {
				return err
			}
			printOrders(cmd, opts.App.Admin.Orders())
			return nil
		},
	}
}

func newAdminCustomersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "customers",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.App.Admin.Load(cmd.Context()); err != nil {
				return err
			}
			customers := opts.App.Admin.Customers()
			if len(customers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no customers")
				return nil
			}
			for _, c := range customers {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s", c.ID, c.Name)
				if c.Organization != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", c.Organization)
				}
				if c.Email != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s", c.Email)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newAdminCustomerCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "customer <id>",
		Short: "Show one customer's order history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer id")
			if err != nil {
				return err
			}
			res, err := opts.App.Admin.CustomerOrders(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "customer #%d  %s\n", res.Customer.ID, res.Customer.Name)
			printOrders(cmd, res.Orders)
			return nil
		},
	}
}

func newAdminExportCommand(opts *RootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export <csv|excel>",
		Short: "Download the order ledger as CSV or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if format != api.ExportCSV && format != api.ExportExcel {
				return fmt.Errorf("unsupported export format %q", format)
			}
			data, err := opts.App.Gateway.ExportOrders(cmd.Context(), format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = opts.App.Config.DownloadDir
			}
			name := export.SuggestedFilename("orders", export.FormatExt(format))
			path, err := export.Save(outDir, name, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "download directory (default from config)")
	return cmd
}
