// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"path/filepath"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	toml "github.com/urfave/cli-altsrc/v3/toml"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/backend/remote"
)

// Each command gets its own instance of these flags since a flag keeps its
// parsed value.

func examplesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "examples",
		Usage:       "show example usages",
		HideDefault: true,
	}
}

func schemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the item schema",
		HideDefault: true,
	}
}

func tldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// configSource returns a value source for key in the config file at path,
// picking the toml or yaml reader by extension.
func configSource(key, path string) cli.ValueSource {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.TOML(key, altsrc.StringSourcer(path))
	}
	return yaml.YAML(key, altsrc.StringSourcer(path))
}

// configChain returns the namespaced and global config sources for key.
func configChain(ns, key, path string) []cli.ValueSource {
	return []cli.ValueSource{
		configSource(ns+"."+key, path),
		configSource(key, path),
	}
}

// NewGlobalFlags returns the result shaping flags shared by every command
// that prints items. params[0] is the command namespace, params[1] the config
// file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	ns, src := params[0], ""
	if len(params) > 1 {
		src = params[1]
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(configChain(ns, "color", src)...),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, FilterValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(configChain(ns, "output", src)...),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				configSource(ns+".sort", src),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(configChain(ns, "titles", src)...),
			Value:   false,
		},
	}

	return
}

// NewRemoteFlags returns the flags that select and shape the connection to
// the todo API, namespaced to a command and config file.
func NewRemoteFlags(ns, src string) []cli.Flag {
	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, src, &cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "base URL of the todo API",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TODOCTL_URL"),
			),
			Value: remote.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, src, &cli.StringFlag{
			Name:  "token",
			Usage: "bearer token sent with every request",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TODOCTL_TOKEN"),
			),
		}),
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "limit items kept from the list, 0 for all",
			Sources: cli.NewValueSourceChain(configChain(ns, "limit", src)...),
			Value:   remote.DefaultLimit,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "give up on the whole command after this long, 0 for never",
			Sources: cli.NewValueSourceChain(configChain(ns, "timeout", src)...),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configChain(ns, flag.Name, path)...)
	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
