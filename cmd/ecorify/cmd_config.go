package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ecorify/config"
)

// configFlags select the configuration file and the overrides applied on
// top of it.
type configFlags struct {
	path string
	sets []string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override an option as key=value (repeatable)")
}

func (f *configFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.path)
	if err != nil {
		return cfg, err
	}
	for _, kv := range f.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		known, err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value))
		if err != nil {
			return cfg, err
		}
		if !known {
			return cfg, fmt.Errorf("unknown option %q (known: %s)", key, strings.Join(config.Keys(), ", "))
		}
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			text, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(text)
			return err
		},
	}

	flags.register(cmd)

	return cmd
}
