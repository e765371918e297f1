package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func indexCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "index <archive>",
		Short: "Find the index of a job by its sequencer or by a file it reads",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sequencer, err := cmd.Flags().GetString("sequencer")
			if err != nil {
				return err
			}
			source, err := cmd.Flags().GetString("source")
			if err != nil {
				return err
			}
			switch {
			case sequencer != "":
				return a.IndexFromSequencer(args[0], sequencer)
			case source != "":
				return a.IndexFromSourceFile(args[0], source)
			default:
				return errors.New("one of --sequencer or --source is required")
			}
		},
	}
	cmd.Flags().String("sequencer", "", "Sequencer of the job, e.g. 001202_00000007")
	cmd.Flags().String("source", "", "Primary input file of the job")
	cmd.MarkFlagsMutuallyExclusive("sequencer", "source")
	return cmd
}
