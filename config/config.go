// Package config holds the options of one extraction/generation run.
//
// A Config is a plain value: it is built once (defaults, then a TOML file,
// then command line overrides) and handed to every component constructor.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("ecorify.config")

type Config struct {
	DefaultPackageName string `toml:"defaultPackageName"`

	ExtractEmptyPackages       bool `toml:"extractEmptyPackages"`
	ExtractNestedTypes         bool `toml:"extractNestedTypes"`
	ExtractAbstractMethods     bool `toml:"extractAbstractMethods"`
	ExtractStaticMethods       bool `toml:"extractStaticMethods"`
	ExtractStaticAttributes    bool `toml:"extractStaticAttributes"`
	ExtractConstructors        bool `toml:"extractConstructors"`
	ExtractPrivateMethods      bool `toml:"extractPrivateMethods"`
	ExtractPrivateAttributes   bool `toml:"extractPrivateAttributes"`
	ExtractProtectedMethods    bool `toml:"extractProtectedMethods"`
	ExtractProtectedAttributes bool `toml:"extractProtectedAttributes"`
	ExtractPublicAttributes    bool `toml:"extractPublicAttributes"`

	AllowMultiplicities        bool `toml:"allowMultiplicities"`
	RespectFinalAsUnchangeable bool `toml:"respectFinalAsUnchangeable"`

	GenerateRootContainer bool   `toml:"generateRootContainer"`
	GenerateDummyClass    bool   `toml:"generateDummyClass"`
	DummyClassName        string `toml:"dummyClassName"`
	RootContainerName     string `toml:"rootContainerName"`

	DataTypePackageName     string `toml:"dataTypePackageName"`
	NestedTypePackageSuffix string `toml:"nestedTypePackageSuffix"`
}

// Default returns the documented defaults used for every key missing from a
// configuration file.
func Default() Config {
	return Config{
		DefaultPackageName: "model",

		ExtractEmptyPackages:       false,
		ExtractNestedTypes:         true,
		ExtractAbstractMethods:     true,
		ExtractStaticMethods:       false,
		ExtractStaticAttributes:    false,
		ExtractConstructors:        false,
		ExtractPrivateMethods:      false,
		ExtractPrivateAttributes:   true,
		ExtractProtectedMethods:    true,
		ExtractProtectedAttributes: true,
		ExtractPublicAttributes:    true,

		AllowMultiplicities:        true,
		RespectFinalAsUnchangeable: true,

		GenerateRootContainer: false,
		GenerateDummyClass:    false,
		DummyClassName:        "Dummy",
		RootContainerName:     "Root",

		DataTypePackageName:     "datatypes",
		NestedTypePackageSuffix: "",
	}
}

type setter func(c *Config, value string) error

func boolKey(field func(c *Config) *bool) setter {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected a boolean, got %q", value)
		}
		*field(c) = b
		return nil
	}
}

func stringKey(field func(c *Config) *string) setter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

var keys = map[string]setter{
	"defaultPackageName":         stringKey(func(c *Config) *string { return &c.DefaultPackageName }),
	"extractEmptyPackages":       boolKey(func(c *Config) *bool { return &c.ExtractEmptyPackages }),
	"extractNestedTypes":         boolKey(func(c *Config) *bool { return &c.ExtractNestedTypes }),
	"extractAbstractMethods":     boolKey(func(c *Config) *bool { return &c.ExtractAbstractMethods }),
	"extractStaticMethods":       boolKey(func(c *Config) *bool { return &c.ExtractStaticMethods }),
	"extractStaticAttributes":    boolKey(func(c *Config) *bool { return &c.ExtractStaticAttributes }),
	"extractConstructors":        boolKey(func(c *Config) *bool { return &c.ExtractConstructors }),
	"extractPrivateMethods":      boolKey(func(c *Config) *bool { return &c.ExtractPrivateMethods }),
	"extractPrivateAttributes":   boolKey(func(c *Config) *bool { return &c.ExtractPrivateAttributes }),
	"extractProtectedMethods":    boolKey(func(c *Config) *bool { return &c.ExtractProtectedMethods }),
	"extractProtectedAttributes": boolKey(func(c *Config) *bool { return &c.ExtractProtectedAttributes }),
	"extractPublicAttributes":    boolKey(func(c *Config) *bool { return &c.ExtractPublicAttributes }),
	"allowMultiplicities":        boolKey(func(c *Config) *bool { return &c.AllowMultiplicities }),
	"respectFinalAsUnchangeable": boolKey(func(c *Config) *bool { return &c.RespectFinalAsUnchangeable }),
	"generateRootContainer":      boolKey(func(c *Config) *bool { return &c.GenerateRootContainer }),
	"generateDummyClass":         boolKey(func(c *Config) *bool { return &c.GenerateDummyClass }),
	"dummyClassName":             stringKey(func(c *Config) *string { return &c.DummyClassName }),
	"rootContainerName":          stringKey(func(c *Config) *string { return &c.RootContainerName }),
	"dataTypePackageName":        stringKey(func(c *Config) *string { return &c.DataTypePackageName }),
	"nestedTypePackageSuffix":    stringKey(func(c *Config) *string { return &c.NestedTypePackageSuffix }),
}

// Keys returns the recognized option names in sorted order.
func Keys() []string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Set applies a single option given in its textual form. Unrecognized keys
// are ignored and reported through the returned bool.
func (c *Config) Set(key, value string) (bool, error) {
	set, ok := keys[key]
	if !ok {
		log.Debugf("ignoring unrecognized option %q", key)
		return false, nil
	}
	if err := set(c, value); err != nil {
		return true, fmt.Errorf("option %s: %w", key, err)
	}
	return true, nil
}

// Apply sets every recognized key of values over c.
func (c *Config) Apply(values map[string]any) error {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		var text string
		switch v := values[k].(type) {
		case string:
			text = v
		case bool:
			text = strconv.FormatBool(v)
		default:
			if _, known := keys[k]; !known {
				log.Debugf("ignoring unrecognized option %q", k)
				continue
			}
			return fmt.Errorf("option %s: unsupported value %v (%T)", k, v, v)
		}
		if _, err := c.Set(k, text); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes a TOML document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Apply(values); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads a TOML configuration file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders c as a TOML document.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
