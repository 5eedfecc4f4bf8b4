package cmd

import (
	"github.com/spf13/cobra"

	"storefront/models"
	"storefront/views"
)

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Browse the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newProductsListCommand(a), newProductsGetCommand(a), newProductsSearchCommand(a))
	return cmd
}

func newProductsListCommand(a *app) *cobra.Command {
	var (
		sortBy                        string
		minPrice, maxPrice, minRating float64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, best ranked first",
		Args:  cobra.NoArgs,
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			filter := models.ProductFilter{SortBy: models.SortBy(sortBy)}
			if cmd.Flags().Changed("min-price") {
				filter.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				filter.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("min-rating") {
				filter.MinRating = &minRating
			}

			v := views.NewProductListView(a.products)
			v.SetFilter(filter)
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			return a.render.Products(v.Products())
		}),
	}

	cmd.Flags().StringVar(&sortBy, "sort-by", "", "ranking, price, popularity or rating")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "only products at or above this price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "only products at or below this price")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "only products rated at least this")
	return cmd
}

func newProductsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			p, err := views.NewProductListView(a.products).Select(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render.Product(*p)
		}),
	}
}

func newProductsSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Search names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			v := views.NewProductListView(a.products)
			if err := v.Search(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.render.Products(v.Products())
		}),
	}
}
