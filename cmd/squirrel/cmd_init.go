package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/squirrel/project"
)

//go:embed init/grammar.peg
var grammarTemplate string

//go:embed init/sample.txt
var sampleInput string

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a squirrel project",
		Long: `Create a squirrel project.

If a directory is provided, creates it and initializes the project there.
Otherwise, initializes in the current directory.

This command writes squirrel.yaml, a sample grammar.peg and a sample
input file. Existing files are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd.OutOrStdout(), dir)
		},
	}

	return cmd
}

func runInit(out io.Writer, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := project.LoadFrom(dir); err == nil {
		fmt.Fprintf(out, "%s already exists\n", project.ConfigFile)
	} else if errors.Is(err, project.ErrNotFound) {
		if err := project.Default(dir).Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %s\n", project.ConfigFile)
	} else {
		return err
	}

	files := []struct{ name, content string }{
		{"grammar.peg", grammarTemplate},
		{"sample.txt", sampleInput},
	}
	for _, f := range files {
		name, content := f.name, f.content
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "%s already exists\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		fmt.Fprintf(out, "Created %s\n", name)
	}
	return nil
}
