package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emi-planner/cli"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent calculations",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Number of records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.loans.History(historyLimit)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(records)
	}

	fmt.Println()
	if len(records) == 0 {
		fmt.Println(cli.Muted("  No calculations recorded yet."))
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Kind,
			rec.ID,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "History", Headers: []string{"When", "Kind", "ID"}, Rows: rows}))
	return nil
}
