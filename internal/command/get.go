// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/meta"
)

var getExamples = [][2]string{
	{"todoctl get 7", "show item 7"},
	{"todoctl get 7 -o json", "item 7 as json"},
}

// GetCommandAction fetches a single item. A missing item is an error so the
// exit code is non-zero.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "get") || ShowExamplesIfRequested(cmd, getExamples) {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
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

	it, err := a.UseCases.Get.Execute(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("%s: %w", id, ErrItemMissing)
	}

	return EmitItems([]item.Item{*it}, BuildAttrs(cmd, attrs.Default), cmd)
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "get",
		Usage:     "show one item",
		UsageText: "todoctl get <id> [options]",
		Flags:     []cli.Flag{schemaFlag()},
		Action:    GetCommandAction,
		Meta:      meta,
	}).Build()
}
