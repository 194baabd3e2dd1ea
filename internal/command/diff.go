// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/meta"
)

var ErrNoSnapshot = errors.New("no saved snapshot; run ls first")

var diffExamples = [][2]string{
	{"todoctl diff", "changes since the last saved list"},
	{"todoctl diff --format delta", "the same as a jsondiffpatch delta"},
	{"todoctl diff --save", "show changes, then save the current list"},
}

// DiffCommandAction compares the saved snapshot with the current remote
// list. The remote list is read directly so the snapshot is not replaced
// before the comparison.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") || ShowExamplesIfRequested(cmd, diffExamples) {
		return nil
	}

	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	snap, ok := a.Snapshot()
	if !ok {
		return ErrNoSnapshot
	}

	current, err := a.UseCases.List.Execute(ctx)
	if err != nil {
		return err
	}

	out, err := DiffItems(snap.Items, current, cmd.String("format"), cmd.Bool("color"))
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Fprintf(stdout(cmd), "no changes since %s\n", snap.SavedAt.Local().Format(time.RFC3339))
	} else {
		fmt.Fprintln(stdout(cmd), strings.TrimRight(out, "\n"))
	}

	if cmd.Bool("save") {
		if err := a.Settings.Snapshots.SaveSnapshot(a.BaseURL(), current); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	return nil
}

// DiffItems renders the difference between two collections keyed by id. An
// empty string means they are equal.
func DiffItems(before, after []item.Item, format string, color bool) (string, error) {
	left, right := byID(before), byID(after)
	d := gojsondiff.New().CompareObjects(left, right)
	if !d.Modified() {
		return "", nil
	}

	switch format {
	case "delta":
		return formatter.NewDeltaFormatter().Format(d)
	case "", "ascii":
		f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
			ShowArrayIndex: true,
			Coloring:       color,
		})
		return f.Format(d)
	default:
		return "", fmt.Errorf("unsupported diff format %q", format)
	}
}

func byID(items []item.Item) map[string]interface{} {
	out := make(map[string]interface{}, len(items))
	for _, it := range items {
		out[it.ID] = map[string]interface{}{
			"title":     it.Title,
			"completed": it.Completed,
		}
	}
	return out
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&ItemCommandBuilder{
		Name:      "diff",
		Usage:     "compare the saved list with the current one",
		UsageText: "todoctl diff [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "ascii or delta",
				Value: "ascii",
				Validator: func(value string) error {
					if value != "ascii" && value != "delta" {
						return errors.New("must be ascii or delta")
					}
					return nil
				},
			},
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "color the ascii diff",
				Sources: cli.NewValueSourceChain(configChain("diff", "color", meta.Config.Source)...),
			},
			&cli.BoolFlag{
				Name:        "save",
				Usage:       "save the current list as the new snapshot",
				HideDefault: true,
			},
		},
		NoOutput: true,
		Action:   DiffCommandAction,
		Meta:     meta,
	}).Build()
}
