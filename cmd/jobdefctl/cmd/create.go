package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mu2e/jobdef/internal/jobdefctl"
)

func createCmd() *cobra.Command {
	a := jobdefctl.New()
	cmd := &cobra.Command{
		Use:   "create <output>",
		Short: "Create a job-set archive",
		Long: `Create a job-set archive from a JSON or YAML job parameter file. The job parameters are validated
before anything is written.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts jobdefctl.CreateOptions
			var err error
			if opts.JobPars, err = cmd.Flags().GetString("jobpars"); err != nil {
				return err
			}
			if opts.Template, err = cmd.Flags().GetString("template"); err != nil {
				return err
			}
			if opts.Code, err = cmd.Flags().GetString("code"); err != nil {
				return err
			}
			if opts.Compress, err = cmd.Flags().GetBool("gzip"); err != nil {
				return err
			}
			return a.Create(args[0], opts)
		},
	}
	cmd.Flags().String("jobpars", "", "Job parameter file")
	if err := cmd.MarkFlagRequired("jobpars"); err != nil {
		panic(err)
	}
	cmd.Flags().String("template", "", "Job configuration template")
	cmd.Flags().String("code", "", "Code to pack under the name given by the job parameters")
	cmd.Flags().Bool("gzip", false, "Compress the archive")
	return cmd
}
