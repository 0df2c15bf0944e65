package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"emi-planner/amortization"
	"emi-planner/cli"
	"emi-planner/domain"
)

var (
	emiPrincipal float64
	emiLoan      loanFlags
)

var emiCmd = &cobra.Command{
	Use:   "emi",
	Short: "Standard EMI and totals for a loan",
	RunE:  runEMI,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Balance curve for a loan, optionally with a custom monthly payment",
	RunE:  runProject,
}

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Repayment suggestions for a loan",
	RunE:  runAdvice,
}

func init() {
	for i, c := range []*cobra.Command{emiCmd, projectCmd, adviceCmd} {
		c.Flags().Float64VarP(&emiPrincipal, "principal", "p", 800000, "Loan principal in rupees")
		emiLoan.bind(c, "", i > 0)
		rootCmd.AddCommand(c)
	}
}

func runEMI(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := emiLoan.params(emiPrincipal)
	res, err := a.loans.CalculateEMI(p)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(res)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EMI"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Principal", domain.FormatRupees(p.Principal)},
			{"Rate", fmt.Sprintf("%.2f%%", p.AnnualRatePercent)},
			{"Moratorium", fmt.Sprintf("%d years", p.MoratoriumYears)},
			{"Tenure", fmt.Sprintf("%d years", p.TenureYears)},
			{"---"},
			{"Capitalized principal", domain.FormatRupees(res.CapitalizedPrincipal)},
			{"Monthly EMI", domain.FormatRupees(res.StandardEMI)},
			{"Total repayment", domain.FormatRupees(res.TotalRepayment)},
			{"Total interest", domain.FormatRupees(res.TotalInterest)},
		},
	}))
	return nil
}

func runProject(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.loans.Project(emiLoan.params(emiPrincipal))
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(res)
	}

	rows := make([][]string, 0, len(res.Points))
	for _, pt := range res.Points {
		rows = append(rows, []string{pt.Label, domain.FormatRupees(pt.Balance)})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BALANCE PROJECTION"))
	fmt.Println()
	fmt.Println("  " + cli.RenderSparkline(balances(res.Points)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Period", "Balance"}, Rows: rows}))
	fmt.Println()
	fmt.Println(cli.Muted("  Standard EMI %s  |  Total paid %s  |  Status %s",
		domain.FormatRupees(res.StandardEMI), domain.FormatRupees(res.TotalPaid), res.Status))
	if res.Warning != "" {
		fmt.Println(cli.Warn(res.Warning))
	}
	return nil
}

func runAdvice(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	advice, err := a.advice.Advise(emiLoan.params(emiPrincipal))
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(advice)
	}

	fmt.Println()
	if len(advice) == 0 {
		fmt.Println(cli.Good("Your plan is on track."))
		return nil
	}
	for _, ad := range advice {
		if ad.Kind == domain.AdviceOverpayment {
			fmt.Println(cli.Good(ad.Message))
			continue
		}
		fmt.Println(cli.Warn(ad.Message))
	}
	return nil
}

func balances(points []amortization.BalancePoint) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = pt.Balance
	}
	return out
}
