// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"github.com/staranto/todoctl/internal/cacheutil"
	"github.com/staranto/todoctl/internal/command"
	"github.com/staranto/todoctl/internal/config"
	mylog "github.com/staranto/todoctl/internal/log"
	"github.com/staranto/todoctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: pre-create cache directory when caching is enabled and
	// drop stale entries.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	} else if ok {
		purgeCache()
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// purgeCache removes cache entries older than cache.clean hours. Zero or
// unset keeps everything.
func purgeCache() {
	hours, _ := config.GetInt("cache.clean", 0)
	if hours <= 0 {
		return
	}
	store, ok := cacheutil.Default()
	if !ok {
		return
	}
	if n, err := store.Purge(hours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	} else {
		log.Debugf("purged %d cache entries", n)
	}
}

// mangleArguments splices a named argument set from the config file in
// right after the subcommand. "@name" on the command line picks
// <cmd>.<name>; without one, <cmd>.defaults is used when present. Explicit
// args follow the set so they win.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	// Flags directly after the binary are not a subcommand.
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	set := "defaults"
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	workingArgs := preamble
	for _, arg := range setArgs {
		workingArgs = append(workingArgs, strings.Fields(arg)...)
	}
	workingArgs = append(workingArgs, rest...)

	log.Debugf("set=%s, args=%v", set, workingArgs)
	return workingArgs
}
