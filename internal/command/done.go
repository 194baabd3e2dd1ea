// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/meta"
)

var doneExamples = [][2]string{
	{"todoctl done 3", "mark item 3 completed"},
}

// DoneCommandAction marks an item completed. Completion is one way, so an
// item that is already done is reported and left alone.
func DoneCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "done") || ShowExamplesIfRequested(cmd, doneExamples) {
		return nil
	}

	id, err := itemID(cmd)
	if err != nil {
		return err
	}

	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	loadOrWarn(ctx, a)

	it, err := ensureItem(ctx, a, id)
	if err != nil {
		return err
	}

	if it.Completed {
		fmt.Fprintf(stderr(cmd), "%s is already completed\n", id)
	} else {
		if err := a.Controller.Complete(ctx, id); err != nil {
			return fmt.Errorf("failed to complete %s: %w", id, err)
		}
		fmt.Fprintf(stderr(cmd), "completed %s\n", id)
	}

	return EmitItems(a.Controller.Items(), BuildAttrs(cmd, attrs.Default), cmd)
}

// DoneCommandBuilder constructs the cli.Command for "done".
func DoneCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "done",
		Usage:     "mark an item completed",
		UsageText: "todoctl done <id> [options]",
		Action:    DoneCommandAction,
		Meta:      meta,
	}).Build()
}
