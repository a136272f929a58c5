package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/gva"
	"github.com/mamadbah2/livestock-gva/internal/render/pdf"
	"github.com/mamadbah2/livestock-gva/pkg/currency"
)

// cliAuthor stamps reports produced outside the HTTP service.
var cliAuthor = models.Author{ID: "gvactl", Name: "gvactl", Role: models.RoleAdmin}

func calculateCmd(coeffPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calculate [census.json]",
		Short: "Run the GVA engine on a census read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := computeReport(cmd, *coeffPath, args)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printBreakdown(cmd.OutOrStdout(), report.Results)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func coefficientsCmd(coeffPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "coefficients",
		Short: "Print the coefficient table in force as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coeffs, err := gva.LoadCoefficients(*coeffPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(coeffs); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func pdfCmd(coeffPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf [census.json]",
		Short: "Compute a census and write the PDF report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := computeReport(cmd, *coeffPath, args)
			if err != nil {
				return err
			}

			renderer := pdf.NewRenderer()
			if out == "" {
				out = renderer.Filename(report)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := renderer.Render(f, report); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (defaults to the report filename)")
	return cmd
}

func computeReport(cmd *cobra.Command, coeffPath string, args []string) (models.Report, error) {
	coeffs, err := gva.LoadCoefficients(coeffPath)
	if err != nil {
		return models.Report{}, err
	}
	engine, err := gva.NewEngine(coeffs)
	if err != nil {
		return models.Report{}, err
	}

	in, err := readCensus(cmd.InOrStdin(), args)
	if err != nil {
		return models.Report{}, err
	}
	return engine.Aggregate(in, cliAuthor)
}

func readCensus(stdin io.Reader, args []string) (models.CensusInput, error) {
	r := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return models.CensusInput{}, err
		}
		defer f.Close()
		r = f
	}

	var in models.CensusInput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return models.CensusInput{}, fmt.Errorf("decode census: %w", err)
	}
	return in, nil
}

func printBreakdown(w io.Writer, res models.Results) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Category\tGSDP\tInput cost\tNet GVA\t")
	for _, b := range res.Breakdowns() {
		v := b.Value()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			b.Category().Label(), currency.Format(v.GSDP), currency.Format(v.InputCost), currency.Format(v.NetGVA))
	}
	fmt.Fprintf(tw, "Total village GVA\t\t\t%s\t\n", currency.Format(res.TotalVillageGVA))
	return tw.Flush()
}
