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

var rmExamples = [][2]string{
	{"todoctl rm 3", "delete item 3"},
}

// RmCommandAction deletes an item and prints what is left.
func RmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "rm") || ShowExamplesIfRequested(cmd, rmExamples) {
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

	if _, err := ensureItem(ctx, a, id); err != nil {
		return err
	}
	if err := a.Controller.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	fmt.Fprintf(stderr(cmd), "deleted %s\n", id)

	return EmitItems(a.Controller.Items(), BuildAttrs(cmd, attrs.Default), cmd)
}

// RmCommandBuilder constructs the cli.Command for "rm".
func RmCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "rm",
		Usage:     "delete an item",
		UsageText: "todoctl rm <id> [options]",
		Action:    RmCommandAction,
		Meta:      meta,
	}).Build()
}
