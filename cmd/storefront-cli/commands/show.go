package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/asb-digital/storefront-engine/internal/variants"
)

var (
	showChassisKeys []string
	showVariantSel  []string
)

var showCmd = &cobra.Command{
	Use:   "show <catalogue-id>",
	Short: "Show a catalogue record, its filter options and configurations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := apiClient()
		rec, err := client.Catalogue(ctx, args[0])
		if err != nil {
			return err
		}

		title := color.New(color.FgGreen, color.Bold)
		title.Println(rec.BodyType.Label())
		if rec.Article != "" {
			fmt.Printf("Article:   %s\n", rec.Article)
		}
		if rec.LeadTime != "" {
			fmt.Printf("Lead time: %s\n", rec.LeadTime)
		}
		if rec.Notes != "" {
			fmt.Printf("Notes:     %s\n", rec.Notes)
		}

		opts, err := client.Options(ctx, rec.ID)
		if err != nil {
			return err
		}

		if len(opts.Chassis) > 0 {
			color.New(color.FgCyan).Println("\nAvailable chassis:")
			for _, ch := range opts.Chassis {
				fmt.Printf("  %-44s %s\n", ch.Key, ch.Label)
			}
		}
		if len(opts.Variants) > 0 {
			color.New(color.FgCyan).Println("\nVariant options:")
			categories := make([]string, 0, len(opts.Variants))
			for category := range opts.Variants {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			for _, category := range categories {
				fmt.Printf("  %s: %s\n", category, strings.Join(opts.Variants[category], ", "))
			}
		}

		sel := variants.Selection{ChassisKeys: showChassisKeys, Variants: parseSelections(showVariantSel)}
		combinations, err := client.FilterVariants(ctx, rec.ID, sel)
		if err != nil {
			return err
		}

		color.New(color.FgCyan).Printf("\nConfigurations (%d):\n", len(combinations))
		for _, v := range combinations {
			size := "-"
			if v.SizeData != nil {
				size = v.SizeData.Label()
			}
			chassis := "-"
			if v.ChassisData != nil {
				chassis = v.ChassisData.Label()
			}
			base := ""
			if v.BaseModel {
				base = " [base model]"
			}
			fmt.Printf("  %-14s %-24s %-32s %s%s\n", v.CombinationID, size, chassis, v.DisplayPrice(), base)
		}
		return nil
	},
}

// parseSelections converts repeated category=value flags into the filter
// selection mapping.
func parseSelections(pairs []string) map[string][]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, pair := range pairs {
		category, value, ok := strings.Cut(pair, "=")
		if !ok || category == "" || value == "" {
			continue
		}
		out[category] = append(out[category], value)
	}
	return out
}

func init() {
	showCmd.Flags().StringSliceVar(&showChassisKeys, "chassis", nil, "filter by chassis option key (repeatable)")
	showCmd.Flags().StringSliceVar(&showVariantSel, "variant", nil, "filter by category=value (repeatable)")
	rootCmd.AddCommand(showCmd)
}
