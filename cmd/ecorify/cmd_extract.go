package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ecorify/extract"
	"github.com/dhamidi/ecorify/format"
)

func newExtractCmd() *cobra.Command {
	var source sourceFlags

	cmd := &cobra.Command{
		Use:   "extract <dir>",
		Short: "Print the model extracted from a source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := source.scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cp := source.newClasspath()
			if cp != nil {
				defer cp.Close()
			}

			m, err := extract.New(cb.Workspace(cp)).Extract()
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			if err := format.NewLineEncoder(os.Stdout).Encode(m); err != nil {
				return fmt.Errorf("encode line: %w", err)
			}
			return nil
		},
	}

	source.register(cmd)

	return cmd
}
