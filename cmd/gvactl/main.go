package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var coeffPath string

	rootCmd := &cobra.Command{
		Use:           "gvactl",
		Short:         "Compute village livestock GVA offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&coeffPath, "coefficients", "c", os.Getenv("GVA_COEFFICIENTS_FILE"), "YAML coefficient overrides")

	rootCmd.AddCommand(calculateCmd(&coeffPath))
	rootCmd.AddCommand(coefficientsCmd(&coeffPath))
	rootCmd.AddCommand(pdfCmd(&coeffPath))

	return rootCmd
}
