// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/ui"
)

// TuiCommandAction starts the interactive list. It shows the saved snapshot,
// when there is one, until the first refresh lands.
func TuiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tui") {
		return nil
	}

	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	return ui.Run(ctx, a, ui.WithColor(cmd.Bool("color")))
}

// TuiCommandBuilder constructs the cli.Command for "tui".
func TuiCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "tui",
		Usage:     "interactive todo list",
		UsageText: "todoctl tui [options]",
		Flags: []cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "use colors",
				Sources: cli.NewValueSourceChain(configChain("tui", "color", meta.Config.Source)...),
				Value:   true,
			},
		},
		NoOutput: true,
		Action:   TuiCommandAction,
		Meta:     meta,
	}).Build()
}
