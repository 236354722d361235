package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genophen/genophen/internal/cohortio"
	"github.com/genophen/genophen/internal/summary"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <cohort.json>",
		Short: "Print a descriptive summary of a cohort",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cohort, err := cohortio.Load(args[0])
			if err != nil {
				return err
			}
			s, err := summary.Summarize(cohort)
			if err != nil {
				return err
			}
			fmt.Print(s.Format())
			return nil
		},
	}
}
