package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int
	var logPath string

	rootCmd := &cobra.Command{
		Use:          "ecorify",
		Short:        "Derive an Ecore metamodel from Java sources",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logPath != "" {
				path = &logPath
			}
			commonlog.Configure(verbosity, path)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "add verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write log messages to this file instead of stderr")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
