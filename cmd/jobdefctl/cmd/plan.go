package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func planCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "plan <archive>",
		Short: "Describe the inputs, outputs and settings of one job",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := cmd.Flags().GetInt("index")
			if err != nil {
				return err
			}
			return a.DescribePlan(args[0], index)
		},
	}
	addIndexFlag(cmd)
	return cmd
}

func addIndexFlag(cmd *cobra.Command) {
	cmd.Flags().Int("index", 0, "Index of the job within the job set")
	if err := cmd.MarkFlagRequired("index"); err != nil {
		panic(err)
	}
}
