package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

func newOrderCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Submit and inspect orders",
	}
	cmd.AddCommand(newOrderSubmitCommand(opts))
	cmd.AddCommand(newOrderHistoryCommand(opts))
	cmd.AddCommand(newOrderShowCommand(opts))
	return cmd
}

func newOrderSubmitCommand(opts *RootOptions) *cobra.Command {
	var (
		name  string
		email string
		phone string
		org   string
		notes string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customer := domain.Customer{
				Name:         name,
				Email:        email,
				Phone:        phone,
				Organization: org,
			}
			summary := cartSummary(opts.App.Cart.Items())
			order, err := opts.App.Cart.Checkout(cmd.Context(), opts.App.Gateway, customer, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order placed: %s\n", summary)
			if order.ID != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "order id: %d\n", order.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&org, "org", "", "customer organization")
	cmd.Flags().StringVar(&notes, "notes", "", "order notes")
	return cmd
}

func newOrderHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List submitted orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := opts.App.Gateway.GetOrders(cmd.Context())
			if err != nil {
				return err
			}
			printOrders(cmd, orders)
			return nil
		},
	}
}

func newOrderShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("order id must be an integer: %w", err)
			}
			order, err := opts.App.Gateway.GetOrderDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrders(cmd, []domain.Order{order})
			for _, item := range order.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s  %s  x%d\n", item.ISBN, item.Title, item.Quantity)
			}
			return nil
		},
	}
}

func printOrders(cmd *cobra.Command, orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no orders")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %s  items=%d", o.ID, o.OrderDate, o.Status, o.TotalItems)
		if o.CustomerName != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s", o.CustomerName)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
}
