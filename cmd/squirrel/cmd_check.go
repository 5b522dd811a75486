package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/squirrel/ebnf"
	"github.com/dhamidi/squirrel/grammar"
	"github.com/dhamidi/squirrel/peg"
)

func newCheckCmd() *cobra.Command {
	var startRule string

	cmd := &cobra.Command{
		Use:   "check <grammar>",
		Short: "Compile a grammar and report every error in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var g *peg.Grammar
			var err error
			if strings.EqualFold(filepath.Ext(filename), ".ebnf") {
				if startRule == "" {
					return fmt.Errorf("%s: an EBNF grammar needs --start", filename)
				}
				g, err = ebnf.CompileFile(filename, startRule)
			} else {
				g, err = grammar.CompileFile(filename)
			}

			var list grammar.ErrorList
			if errors.As(err, &list) {
				for _, e := range list {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return fmt.Errorf("%s: %d errors", filename, len(list))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules\n", filename, len(g.RuleNames()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&startRule, "start", "s", "", "start production of an EBNF grammar")

	return cmd
}
