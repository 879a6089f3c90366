package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the price-inquiry cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cart lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		view, err := apiClient().Cart(ctx)
		if err != nil {
			return err
		}
		if len(view.Lines) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}
		for _, line := range view.Lines {
			variant := "no variant"
			if line.Variant != nil {
				variant = line.Variant.CombinationID
			}
			fmt.Printf("%-40s %-24s x%d\n", line.ID, variant, line.Quantity)
		}
		fmt.Printf("\nTotal items: %d\n", view.Count)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <catalogue-id> [combination-id]",
	Short: "Add a product or configuration to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		combinationID := ""
		if len(args) > 1 {
			combinationID = args[1]
		}
		line, err := apiClient().AddToCart(ctx, args[0], combinationID)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("✓ %s x%d\n", line.ID, line.Quantity)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <line-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := apiClient().RemoveFromCart(ctx, args[0]); err != nil {
			return err
		}
		color.New(color.FgGreen).Println("✓ removed")
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := apiClient().ClearCart(ctx); err != nil {
			return err
		}
		color.New(color.FgGreen).Println("✓ cart cleared")
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
