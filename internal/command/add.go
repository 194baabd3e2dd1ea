// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/meta"
)

var addExamples = [][2]string{
	{"todoctl add buy milk", "create an item titled 'buy milk'"},
	{"todoctl add --completed call mom", "create an item already done"},
}

// AddCommandAction creates an item. The title is validated before anything
// is sent; on success the settled collection is printed.
func AddCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "add") || ShowExamplesIfRequested(cmd, addExamples) {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	cand := item.New(strings.TrimSpace(strings.Join(cmd.Args().Slice(), " ")))
	if cmd.IsSet("completed") {
		done := cmd.Bool("completed")
		cand.Completed = &done
	}
	if _, err := item.Validate(cand); err != nil {
		return err
	}

	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	loadOrWarn(ctx, a)

	created, err := a.Controller.Create(ctx, cand)
	if err != nil {
		return fmt.Errorf("failed to add %q: %w", cand.Title, err)
	}
	fmt.Fprintf(stderr(cmd), "added %s %q\n", created.ID, created.Title)

	return EmitItems(a.Controller.Items(), BuildAttrs(cmd, attrs.Default), cmd)
}

// AddCommandBuilder constructs the cli.Command for "add".
func AddCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "add",
		Usage:     "create an item",
		UsageText: "todoctl add <title...> [options]",
		Flags: []cli.Flag{
			schemaFlag(),
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "create the item already completed",
				HideDefault: true,
			},
		},
		Action: AddCommandAction,
		Meta:   meta,
	}).Build()
}
