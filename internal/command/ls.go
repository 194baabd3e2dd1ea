// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/meta"
)

var lsExamples = [][2]string{
	{"todoctl ls", "first ten items as a table"},
	{"todoctl ls --limit 0 -f completed=false", "every open item"},
	{"todoctl ls -s -title -o yaml", "yaml, sorted by title descending"},
	{"todoctl ls -a 'title::15u' --titles", "upper-cased titles cut to 15 runes"},
}

// LsCommandAction is the action handler for the "ls" subcommand. It refreshes
// the collection from the API and emits it per common flags.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ls") || ShowExamplesIfRequested(cmd, lsExamples) {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	al := BuildAttrs(cmd, attrs.Default)
	log.Debugf("attrs: %v", al)

	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	if err := a.Load(ctx); err != nil {
		return err
	}

	return EmitItems(a.Controller.Items(), al, cmd)
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "ls",
		Usage:     "list items",
		UsageText: "todoctl ls [options]",
		Flags:     []cli.Flag{schemaFlag()},
		Action:    LsCommandAction,
		Meta:      meta,
	}).Build()
}
