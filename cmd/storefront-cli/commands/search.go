package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	searchPage  int
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the catalogue by relevance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) > 0 {
			term = args[0]
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Searching catalogue..."
		if !noColor {
			_ = s.Color("cyan")
		}
		s.Start()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		page, err := apiClient().Catalogues(ctx, searchPage, searchLimit, term)
		s.Stop()
		if err != nil {
			return err
		}

		if len(page.Records) == 0 {
			color.New(color.FgYellow).Println("No catalogue records matched.")
			return nil
		}

		header := color.New(color.FgCyan, color.Bold)
		header.Printf("%-26s %-24s %-14s %s\n", "ID", "BODY TYPE", "ARTICLE", "LEAD TIME")
		for _, rec := range page.Records {
			fmt.Printf("%-26s %-24s %-14s %s\n", rec.ID, rec.BodyType.Label(), rec.Article, rec.LeadTime)
		}
		fmt.Printf("\n%d of %d records (page %d/%d)\n",
			len(page.Records), page.Pagination.Total, page.Pagination.Page, page.Pagination.Pages)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "results per page")
	rootCmd.AddCommand(searchCmd)
}
