package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storefront/utils"
	"storefront/views"
)

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart (requires login)",
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			return showCart(cmd, a, nil)
		}),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart with an estimated total",
			Args:  cobra.NoArgs,
			RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
				return showCart(cmd, a, nil)
			}),
		},
		newCartAddCommand(a),
		&cobra.Command{
			Use:   "update PRODUCT_ID QUANTITY",
			Short: "Set the quantity of a line (at least 1; use remove to drop it)",
			Args:  cobra.ExactArgs(2),
			RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
				quantity, err := strconv.Atoi(args[1])
				if err != nil {
					return utils.NewValidationError(fmt.Sprintf("quantity %q is not a whole number", args[1]))
				}
				return showCart(cmd, a, func(v *views.CartView) error {
					return v.UpdateQuantity(cmd.Context(), args[0], quantity)
				})
			}),
		},
		&cobra.Command{
			Use:   "remove PRODUCT_ID",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
				return showCart(cmd, a, func(v *views.CartView) error {
					return v.Remove(cmd.Context(), args[0])
				})
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
				return showCart(cmd, a, func(v *views.CartView) error {
					return v.Clear(cmd.Context())
				})
			}),
		},
		&cobra.Command{
			Use:   "count",
			Short: "Print the number of items in the cart",
			Args:  cobra.NoArgs,
			RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
				n, err := a.cart.Count(cmd.Context())
				if err != nil {
					return err
				}
				return a.render.Count(n)
			}),
		},
	)
	return cmd
}

func newCartAddCommand(a *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add PRODUCT_ID PRODUCT_NAME UNIT_PRICE",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(3),
		RunE: withApp(a, func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return utils.NewValidationError(fmt.Sprintf("price %q is not a number", args[2]))
			}
			return showCart(cmd, a, func(v *views.CartView) error {
				return v.Add(cmd.Context(), args[0], args[1], price, quantity)
			})
		}),
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "how many to add")
	return cmd
}

// showCart runs mutate, if any, and renders the snapshot the view ends up with.
func showCart(cmd *cobra.Command, a *app, mutate func(*views.CartView) error) error {
	v := views.NewCartView(a.cart)
	defer v.Close()

	var err error
	if mutate != nil {
		err = mutate(v)
	} else {
		err = v.Load(cmd.Context())
	}
	if err != nil {
		return err
	}
	return a.render.Cart(*v.Snapshot())
}
