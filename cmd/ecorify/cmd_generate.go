package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ecorify/config"
	"github.com/dhamidi/ecorify/format"
	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/java/codebase"
	"github.com/dhamidi/ecorify/transform"
)

var log = commonlog.GetLogger("ecorify")

func newGenerateCmd() *cobra.Command {
	var source sourceFlags
	var conf configFlags
	var deselect []string
	var output string
	var watch bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Generate an Ecore metamodel from a source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cb, err := source.scan(ctx, args[0])
			if err != nil {
				return err
			}
			cp := source.newClasspath()
			if cp != nil {
				defer cp.Close()
			}

			g := &generation{cfg: cfg, codebase: cb, classpath: cp, deselect: deselect, output: output}
			if err := g.run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return g.watch(ctx, debounce)
		},
	}

	source.register(cmd)
	conf.register(cmd)
	cmd.Flags().StringArrayVar(&deselect, "deselect", nil, "glob over dotted package and type names to leave out (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the metamodel to this file instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate whenever a source file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before regenerating in watch mode")

	return cmd
}

type generation struct {
	cfg       config.Config
	codebase  *codebase.Codebase
	classpath *java.Classpath
	deselect  []string
	output    string
}

func (g *generation) run() error {
	var selectors []transform.Selector
	if len(g.deselect) > 0 {
		selectors = append(selectors, transform.DeselectMatching(g.deselect...))
	}
	result, err := transform.Run(g.cfg, g.codebase.Workspace(g.classpath), selectors...)
	if err != nil {
		return err
	}
	if result.Report.Total() > 0 {
		fmt.Fprintln(os.Stderr, result.Report.String())
	}

	var buf bytes.Buffer
	if err := format.NewJSONEncoder(&buf).Encode(result.Root); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if g.output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(g.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", g.output, err)
	}
	log.Noticef("wrote %s", g.output)
	return nil
}

// watch regenerates after every burst of source changes until interrupted.
// Failed runs are logged and the previous output is kept.
func (g *generation) watch(ctx context.Context, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := codebase.NewWatcher(g.codebase, debounce, func(changed []string) {
		log.Infof("%d files changed, regenerating", len(changed))
		if err := g.run(); err != nil {
			log.Errorf("%s", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Close()
		return fmt.Errorf("watch: %w", err)
	}
	log.Noticef("watching %s", g.codebase.RootDir())

	<-ctx.Done()
	return w.Close()
}
