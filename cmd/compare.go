package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"emi-planner/amortization"
	"emi-planner/cli"
	"emi-planner/domain"
)

var (
	comparePrincipal float64
	compareA         loanFlags
	compareB         loanFlags
	compareSchemeA   string
	compareSchemeB   string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two loan schemes side by side",
	Long: "Compare two schemes for the same principal. Each side is set with --a-*/--b-* flags " +
		"or prefilled from the catalog with --a-scheme/--b-scheme.",
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Float64VarP(&comparePrincipal, "principal", "p", 800000, "Loan principal in rupees")
	compareA.bind(compareCmd, "a-", false)
	compareB.bind(compareCmd, "b-", false)
	compareCmd.Flags().StringVar(&compareSchemeA, "a-scheme", "", "Catalog scheme ID for side A")
	compareCmd.Flags().StringVar(&compareSchemeB, "b-scheme", "", "Catalog scheme ID for side B")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sideA, err := compareSide(a, compareSchemeA, &compareA)
	if err != nil {
		return err
	}
	sideB, err := compareSide(a, compareSchemeB, &compareB)
	if err != nil {
		return err
	}

	res, err := a.loans.Compare(domain.CompareInput{A: sideA, B: sideB})
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(res)
	}

	nameA, nameB := label(res.A.Name, "A"), label(res.B.Name, "B")
	rows := make([][]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, []string{row.Label, domain.FormatRupees(row.BalanceA), domain.FormatRupees(row.BalanceB)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Monthly EMI", domain.FormatRupees(res.A.StandardEMI), domain.FormatRupees(res.B.StandardEMI)},
		[]string{"Total repayment", domain.FormatRupees(res.A.TotalRepayment), domain.FormatRupees(res.B.TotalRepayment)},
	)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCHEME COMPARISON"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Period", nameA, nameB}, Rows: rows}))
	fmt.Println()
	fmt.Println(cli.Good(res.Verdict))
	return nil
}

func compareSide(a *app, schemeID string, f *loanFlags) (amortization.LoanParameters, error) {
	if schemeID == "" {
		return f.params(comparePrincipal), nil
	}
	p, err := a.schemes.Prefill(schemeID)
	if err != nil {
		return amortization.LoanParameters{}, err
	}
	p.Principal = comparePrincipal
	return p, nil
}

func label(name, side string) string {
	if name == "" {
		return "Scheme " + side
	}
	return name
}
