package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/dhamidi/squirrel/format"
	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/project"
)

var errSyntax = errors.New("input has syntax errors")

func newParseCmd() *cobra.Command {
	var grammarFile string
	var startRule string
	var outputFormat string
	var showStats bool

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse input files and print their syntax tree or errors",
		Long: `Parse input files with a grammar and print the result.

The grammar comes from --grammar, or else from the project configuration
named by $SQUIRREL_CONFIG or found in the current directory or a parent.
Without file arguments the project's input files are parsed.

The command fails if any input has syntax errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(grammarFile, startRule)
			if err != nil {
				return err
			}
			g, start, err := cfg.LoadGrammar()
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				if files, err = cfg.SourceFiles(); err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no input files")
				}
			}

			var stats *peg.Stats
			if showStats {
				stats = &peg.Stats{}
			}

			failed := false
			for _, filename := range files {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}

				res, err := peg.Parse(g, start, string(data), peg.WithStats(stats))
				if err != nil {
					return err
				}
				failed = failed || res.HasErrors

				enc, err := format.New(outputFormat, cmd.OutOrStdout(), filename)
				if err != nil {
					return err
				}
				if err := enc.Encode(res); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}

			if stats != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "attempts=%d memo_hits=%d growth_rounds=%d recoveries=%d\n",
					stats.MatchAttempts, stats.MemoHits, stats.GrowthRounds, stats.Recoveries)
			}
			if failed {
				return errSyntax
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "grammar file (.peg or .ebnf)")
	cmd.Flags().StringVarP(&startRule, "start", "s", "", "top rule (defaults to the first rule)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print parser statistics to stderr")

	return cmd
}

// resolveConfig returns the configuration to parse with. An explicit
// grammar file wins over the project configuration.
func resolveConfig(grammarFile, startRule string) (*project.Config, error) {
	if grammarFile != "" {
		return &project.Config{Grammar: grammarFile, Start: startRule, Dir: "."}, nil
	}

	var cfg *project.Config
	var err error
	if path := env.Str("SQUIRREL_CONFIG"); path != "" {
		cfg, err = project.LoadFile(path)
	} else {
		cfg, err = project.Find(".")
	}
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, fmt.Errorf("%w; pass --grammar or run squirrel init", err)
		}
		return nil, err
	}
	if startRule != "" {
		cfg.Start = startRule
	}
	return cfg, nil
}
