package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/in1011558-byte/book-order-system/internal/api"
	"github.com/in1011558-byte/book-order-system/internal/export"
	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage selection lists (requires login)",
	}
	cmd.AddCommand(newListLsCommand(opts))
	cmd.AddCommand(newListShowCommand(opts))
	cmd.AddCommand(newListCreateCommand(opts))
	cmd.AddCommand(newListUpdateCommand(opts))
	cmd.AddCommand(newListDeleteCommand(opts))
	cmd.AddCommand(newListAddCommand(opts))
	cmd.AddCommand(newListSetCommand(opts))
	cmd.AddCommand(newListRemoveCommand(opts))
	cmd.AddCommand(newListExportCommand(opts))
	return cmd
}

func newListLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List selection lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetched, err := opts.App.Lists.RefreshAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(fetched) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no selection lists")
				return nil
			}
			for _, list := range fetched {
				printListHeader(cmd, list)
			}
			return nil
		},
	}
}

func newListShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one selection list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			list, err := opts.App.Lists.Refresh(cmd.Context(), id)
			if err != nil {
				return err
			}
			printListHeader(cmd, list)
			for _, item := range list.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "    [%d] %s  %s  x%d  ¥%.0f\n",
					item.ID, item.ISBN, item.Title, item.Quantity, item.Subtotal)
			}
			return nil
		},
	}
}

func newListCreateCommand(opts *RootOptions) *cobra.Command {
	var (
		name string
		desc string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a selection list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.App.Lists.Create(cmd.Context(), api.ListRequest{Name: name, Description: desc})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created list %d: %s\n", list.ID, list.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "list name (required)")
	cmd.Flags().StringVar(&desc, "desc", "", "list description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListUpdateCommand(opts *RootOptions) *cobra.Command {
	var (
		name string
		desc string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or re-describe a selection list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			list, err := opts.App.Lists.Update(cmd.Context(), id, api.ListRequest{Name: name, Description: desc})
			if err != nil {
				return err
			}
			printListHeader(cmd, list)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new list name")
	cmd.Flags().StringVar(&desc, "desc", "", "new list description")
	return cmd
}

func newListDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a selection list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, fmt.Sprintf("delete list %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err := opts.App.Lists.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted list %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}

func newListAddCommand(opts *RootOptions) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <list-id> <isbn>",
		Short: "Add a book to a selection list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			book, err := opts.App.Gateway.GetBookDetail(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			list, err := opts.App.Lists.AddBook(cmd.Context(), id, api.ListItemRequest{
				ISBN:        book.ISBN,
				Title:       book.Title,
				Author:      book.Author,
				Publisher:   book.Publisher,
				Thumbnail:   book.Thumbnail,
				Price:       book.Price,
				VolumeCount: book.VolumeCount,
				IsSetOnly:   book.IsSetOnly,
				Quantity:    qty,
			})
			if err != nil {
				return err
			}
			printListHeader(cmd, list)
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity")
	return cmd
}

func newListSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <list-id> <item-id> <quantity>",
		Short: "Change a list item's quantity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1], "item id")
			if err != nil {
				return err
			}
			qty, err := parseID(args[2], "quantity")
			if err != nil {
				return err
			}
			list, err := opts.App.Lists.UpdateBook(cmd.Context(), listID, itemID, qty)
			if err != nil {
				return err
			}
			printListHeader(cmd, list)
			return nil
		},
	}
}

func newListRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id> <item-id>",
		Short: "Remove an item from a selection list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1], "item id")
			if err != nil {
				return err
			}
			list, err := opts.App.Lists.RemoveBook(cmd.Context(), listID, itemID)
			if err != nil {
				return err
			}
			printListHeader(cmd, list)
			return nil
		},
	}
}

func newListExportCommand(opts *RootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export <list-id> <csv|pdf>",
		Short: "Download a selection list as CSV or PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "list id")
			if err != nil {
				return err
			}
			format := args[1]
			if format != api.ExportCSV && format != api.ExportPDF {
				return fmt.Errorf("unsupported list export format %q", format)
			}
			data, err := opts.App.Gateway.ExportList(cmd.Context(), id, format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = opts.App.Config.DownloadDir
			}
			name := export.SuggestedFilename("selection_list", export.FormatExt(format))
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

func printListHeader(cmd *cobra.Command, list domain.SelectionList) {
	fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s  items=%d qty=%d total=¥%.0f\n",
		list.ID, list.Name, list.ItemsCount, list.TotalQuantity, list.TotalAmount)
}

func parseID(raw, what string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", what, err)
	}
	return id, nil
}
