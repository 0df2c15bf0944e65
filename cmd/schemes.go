package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"emi-planner/catalog"
	"emi-planner/cli"
	"emi-planner/domain"
)

var (
	matchUniversity string
	matchDegree     string
	matchAmount     float64
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List education loan schemes",
	RunE:  runSchemes,
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank the cheapest schemes for a university, degree and amount",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchUniversity, "university", "u", "", "University name")
	matchCmd.Flags().StringVarP(&matchDegree, "degree", "d", "", "Degree type")
	matchCmd.Flags().Float64VarP(&matchAmount, "amount", "a", 800000, "Loan amount in rupees")
	_ = matchCmd.MarkFlagRequired("university")
	_ = matchCmd.MarkFlagRequired("degree")

	schemesCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(schemesCmd)
}

func runSchemes(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	schemes := a.schemes.Schemes()
	if flagJSON {
		return printJSON(schemes)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EDUCATION LOAN SCHEMES"))
	fmt.Println()
	fmt.Print(cli.RenderTable(schemeTable("", schemes, nil)))
	return nil
}

func runMatch(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.schemes.Match(catalog.MatchInput{
		University: matchUniversity,
		Degree:     matchDegree,
		LoanAmount: matchAmount,
	})
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(res)
	}

	fmt.Println()
	if len(res.Matches) == 0 {
		fmt.Println(cli.Warn(fmt.Sprintf("No scheme lends %s to tier %s universities.", domain.FormatRupees(matchAmount), res.Tier)))
		return nil
	}

	schemes := make([]catalog.Scheme, len(res.Matches))
	ranks := make([]string, len(res.Matches))
	for i, m := range res.Matches {
		schemes[i] = m.Scheme
		ranks[i] = strings.ReplaceAll(m.Rank, "_", " ")
	}
	fmt.Print(cli.RenderTable(schemeTable(fmt.Sprintf("%s (tier %s)", res.University, res.Tier), schemes, ranks)))
	return nil
}

func schemeTable(title string, schemes []catalog.Scheme, ranks []string) cli.Table {
	headers := []string{"ID", "Bank", "Scheme", "Rate", "Max amount", "Moratorium", "Collateral", "Fee"}
	if ranks != nil {
		headers = append([]string{"Rank"}, headers...)
	}

	rows := make([][]string, 0, len(schemes))
	for i, s := range schemes {
		collateral := "no"
		if s.CollateralRequired {
			collateral = "yes"
		}
		row := []string{
			s.ID,
			s.BankName,
			s.SchemeName,
			fmt.Sprintf("%.2f%%", s.InterestRate),
			domain.FormatRupees(s.MaxAmount),
			strconv.Itoa(s.MoratoriumYears) + "y",
			collateral,
			domain.FormatRupees(s.ProcessingFee),
		}
		if ranks != nil {
			row = append([]string{ranks[i]}, row...)
		}
		rows = append(rows, row)
	}
	return cli.Table{Title: title, Headers: headers, Rows: rows}
}
