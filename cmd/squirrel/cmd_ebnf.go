package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/squirrel/ebnf"
)

func newEbnfCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "ebnf <file>",
		Short: "Verify an EBNF grammar and print it as a PEG grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ebnf.CompileFile(args[0], startProduction)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), g.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production")
	cmd.MarkFlagRequired("start")

	return cmd
}
