package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/java/codebase"
)

// sourceFlags are shared by the commands that read a source tree.
type sourceFlags struct {
	include   []string
	exclude   []string
	classpath []string
	jobs      int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "glob of source files to read, relative to the root (default "+codebase.DefaultInclude+")")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob of source files to skip, relative to the root")
	cmd.Flags().StringArrayVar(&f.classpath, "classpath", nil, "directory or jar searched for referenced types (repeatable)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files parsed in parallel (default one per CPU)")
}

// scan reads every matching file below root.
func (f *sourceFlags) scan(ctx context.Context, root string) (*codebase.Codebase, error) {
	cb, err := codebase.New(root, codebase.Options{
		Include: f.include,
		Exclude: f.exclude,
		Jobs:    f.jobs,
	})
	if err != nil {
		return nil, err
	}
	if err := cb.Scan(ctx); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return cb, nil
}

func (f *sourceFlags) newClasspath() *java.Classpath {
	if len(f.classpath) == 0 {
		return nil
	}
	return java.NewClasspath(f.classpath...)
}
