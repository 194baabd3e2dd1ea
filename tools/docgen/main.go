// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/command"
)

// Minimal doc generator. For every todoctl subcommand it renders markdown
// from the command tree and generates:
//   - docs/commands/<cmd>.md
//   - docs/man/share/man1/todoctl-<cmd>.1 via md2man
//   - docs/tldr/todoctl-<cmd>.md from the command's examples

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	mdOutDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{mdOutDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir %s: %v", dir, err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"todoctl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		md := buildMarkdown(cmd, command.Examples(cmd.Name))

		mdPath := filepath.Join(mdOutDir, cmd.Name+".md")
		if err := writeFileIfChanged(mdPath, []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("todoctl-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, command.Examples(cmd.Name))
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("todoctl-%s.md", cmd.Name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no subcommands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// buildMarkdown renders a man-page shaped markdown document for cmd.
func buildMarkdown(cmd *cli.Command, exs [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% todoctl-%s(1)\n\n", cmd.Name)
	fmt.Fprintf(&b, "# NAME\n\ntodoctl-%s - %s\n\n", cmd.Name, cmd.Usage)
	fmt.Fprintf(&b, "# SYNOPSIS\n\n`%s`\n\n", cmd.UsageText)

	if len(cmd.Flags) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range cmd.Flags {
			names := make([]string, 0, len(f.Names()))
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			usage := ""
			if df, ok := f.(cli.DocGenerationFlag); ok {
				usage = df.GetUsage()
			}
			fmt.Fprintf(&b, "**%s**\n:   %s\n\n", strings.Join(names, ", "), usage)
		}
	}

	if len(exs) > 0 {
		b.WriteString("# EXAMPLES\n\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "%s\n\n    %s\n\n", ex[1], sanitizeCommand(ex[0]))
		}
	}
	return b.String()
}

func buildTLDR(cmd, short string, exs [][2]string) string {
	var b strings.Builder
	// Header
	b.WriteString("# todoctl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + short + ".\n")
	} else {
		b.WriteString("> todoctl " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/todoctl.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`todoctl " + cmd + " --help`\n")
		b.WriteString("\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		desc := strings.TrimSpace(ex[1])
		b.WriteString("- " + strings.ToUpper(desc[:1]) + desc[1:] + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex[0]) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	// Compress runs of whitespace
	return strings.Join(strings.Fields(s), " ")
}
