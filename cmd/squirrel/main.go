package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/xyproto/env/v2"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "squirrel",
		Short: "An error-recovering PEG parser",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", env.Int("SQUIRREL_VERBOSITY", 0), "log verbosity (0 quiet, 1 info, 2 debug)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
