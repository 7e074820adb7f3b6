package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

func newSearchCommand(opts *RootOptions) *cobra.Command {
	var (
		mode     string
		audience string
		genre    string
		priceMax float64
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the book catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := domain.SearchQuery{Mode: domain.SearchMode(mode)}
			if len(args) > 0 {
				q.Text = args[0]
			}
			if audience != "" || genre != "" || priceMax > 0 {
				q.Filters = &domain.SearchFilters{
					TargetAudience: audience,
					Genre:          genre,
					PriceMax:       priceMax,
				}
			} else if strings.TrimSpace(q.Text) == "" {
				return fmt.Errorf("enter a search query or at least one filter")
			}
			books, err := opts.App.Gateway.SearchBooks(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no books found")
				return nil
			}
			for _, b := range books {
				printBook(cmd, b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.SearchByTitle), "search mode (title|isbn)")
	cmd.Flags().StringVar(&audience, "audience", "", "filter by target audience")
	cmd.Flags().StringVar(&genre, "genre", "", "filter by genre")
	cmd.Flags().Float64Var(&priceMax, "price-max", 0, "filter by maximum price")
	return cmd
}

func newBookCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "book <isbn>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := opts.App.Gateway.GetBookDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBook(cmd, book)
			if book.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", book.Description)
			}
			return nil
		},
	}
}

func printBook(cmd *cobra.Command, b domain.Book) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s", b.ISBN, b.Title)
	if b.Author != "" {
		fmt.Fprintf(out, " / %s", b.Author)
	}
	if b.Publisher != "" {
		fmt.Fprintf(out, " (%s)", b.Publisher)
	}
	if b.Price > 0 {
		fmt.Fprintf(out, "  ¥%.0f", b.Price)
	}
	fmt.Fprintln(out)
}
