package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func datasetsCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "datasets <archive>",
		Short: "Print the datasets a job set reads and writes",
		Long: `Print the datasets a job set reads and writes, one per line. With --inputs or --outputs only
those are printed.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := cmd.Flags().GetBool("inputs")
			if err != nil {
				return err
			}
			outputs, err := cmd.Flags().GetBool("outputs")
			if err != nil {
				return err
			}
			return a.Datasets(args[0], inputs, outputs)
		},
	}
	cmd.Flags().Bool("inputs", false, "Print input datasets")
	cmd.Flags().Bool("outputs", false, "Print output datasets")
	return cmd
}
