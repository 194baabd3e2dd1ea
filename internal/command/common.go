// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/app"
	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/cache"
	"github.com/staranto/todoctl/internal/cacheutil"
	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/output"
)

var (
	ErrMissingID   = errors.New("an item id is required")
	ErrItemMissing = errors.New("item not found")
)

// mutationRetry is the retry policy add, done and rm run mutations with.
var mutationRetry = cache.DefaultRetry

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr todoctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "todoctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the item schema when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command) bool {
	if cmd.Bool("schema") {
		fmt.Fprintln(stdout(cmd), string(bytes.TrimSpace(item.Schema())))
		return true
	}
	return false
}

// ShowExamplesIfRequested prints examples when --examples is set.
func ShowExamplesIfRequested(cmd *cli.Command, examples [][2]string) bool {
	if cmd.Bool("examples") {
		output.DumpExamples(stdout(cmd), examples)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs. The global transform spec is applied at output time.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
	}
	return
}

// EmitItems marshals items and passes them to the common output routine.
func EmitItems(items []item.Item, al attrs.AttrList, cmd *cli.Command) error {
	if items == nil {
		items = []item.Item{}
	}
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(items); err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	return output.SliceDiceSpit(raw, al, cmd, stdout(cmd))
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// itemID returns the first positional argument.
func itemID(cmd *cli.Command) (string, error) {
	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

// NewApp builds the composition root from cmd's remote flags. The returned
// context carries --timeout; callers must call cancel.
func NewApp(ctx context.Context, cmd *cli.Command) (*app.App, context.Context, context.CancelFunc, error) {
	limit := cmd.Int("limit")
	if limit == 0 {
		limit = -1
	}

	settings := app.Settings{
		BaseURL: cmd.String("url"),
		Token:   cmd.String("token"),
		Limit:   limit,
		Retry:   &mutationRetry,
	}
	if store, ok := cacheutil.Default(); ok {
		settings.Snapshots = store
	}

	a, err := app.New(settings)
	if err != nil {
		return nil, ctx, func() {}, err
	}
	log.Debugf("app: %v", a.Repository)

	cancel := context.CancelFunc(func() {})
	if d := cmd.Duration("timeout"); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
	}
	return a, ctx, cancel, nil
}

// loadOrWarn refreshes a's collection. A failure is logged and the
// collection stays empty, which mutations tolerate.
func loadOrWarn(ctx context.Context, a *app.App) {
	if err := a.Load(ctx); err != nil {
		log.WithError(err).Warn("continuing without the current list")
	}
}

// ensureItem makes sure id is in a's collection, fetching it on its own when
// the list did not include it.
func ensureItem(ctx context.Context, a *app.App, id string) (item.Item, error) {
	if it, ok := a.Controller.Find(id); ok {
		return it, nil
	}
	it, err := a.UseCases.Get.Execute(ctx, id)
	if err != nil {
		return item.Item{}, fmt.Errorf("failed to fetch %s: %w", id, err)
	}
	if it == nil {
		return item.Item{}, fmt.Errorf("%s: %w", id, ErrItemMissing)
	}
	a.Controller.Seed(append(a.Controller.Items(), *it))
	return *it, nil
}

// ItemCommandBuilder constructs a cli.Command for the subcommands that talk
// to the todo API using a consistent pattern. It wires metadata, adds the
// remote, tldr and examples flags, applies the global flags when the command
// prints items, and runs GlobalFlagsValidator before the action.
type ItemCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	NoOutput  bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *ItemCommandBuilder) Build() *cli.Command {
	src := b.Meta.Config.Source
	flags := append(b.Flags, NewRemoteFlags(b.Name, src)...)
	flags = append(flags, tldrFlag(), examplesFlag())
	if !b.NoOutput {
		flags = append(flags, NewGlobalFlags(b.Name, src)...)
	}

	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}

var examples = map[string][][2]string{
	"ls":     lsExamples,
	"get":    getExamples,
	"add":    addExamples,
	"done":   doneExamples,
	"rm":     rmExamples,
	"diff":   diffExamples,
	"export": exportExamples,
	"serve":  serveExamples,
}

// Examples returns the example usages of the named subcommand.
func Examples(name string) [][2]string {
	return examples[name]
}
