// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
	"github.com/staranto/todoctl/internal/mockapi"
)

var serveExamples = [][2]string{
	{"todoctl serve", "serve 20 sample items on 127.0.0.1:8080"},
	{"todoctl serve --addr :9000 --seed 0", "an empty list on port 9000"},
	{"todoctl serve --fail 4", "fail the first four writes"},
}

// ServeCommandAction runs the mock collection API until interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShowExamplesIfRequested(cmd, serveExamples) {
		return nil
	}

	srv := mockapi.New(mockapi.Sample(cmd.Int("seed"))...)
	if n := cmd.Int("fail"); n > 0 {
		srv.FailNext(n)
	}
	return srv.ListenAndServe(ctx, cmd.String("addr"))
}

// ServeCommandBuilder constructs the cli.Command for "serve".
func ServeCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "serve",
		Usage:     "run a local mock of the todo API",
		UsageText: "todoctl serve [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Sources: cli.NewValueSourceChain(configSource("serve.addr", src)),
				Value:   "127.0.0.1:8080",
			},
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "number of sample items to start with",
				Sources: cli.NewValueSourceChain(configSource("serve.seed", src)),
				Value:   20,
			},
			&cli.IntFlag{
				Name:  "fail",
				Usage: "fail this many writes with a 500 before behaving",
			},
			examplesFlag(),
		},
		Action: ServeCommandAction,
	}
}
