// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/meta"
)

const bashCompletionScript = `# bash completion for todoctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_todoctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "ls get add done rm tui diff export serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local remote="--url -u --token --limit -l --timeout --examples --tldr"
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t"

    case "$cmd" in
        ls|get)
            local opts="$remote $common --schema"
            ;;
        add)
            local opts="$remote $common --schema --completed"
            ;;
        done|rm)
            local opts="$remote $common"
            ;;
        tui)
            local opts="$remote --color -c"
            ;;
        diff)
            local opts="$remote --color -c --format --save"
            ;;
        export)
            local opts="$remote --format --profile --region --endpoint"
            ;;
        serve)
            local opts="--addr --seed --fail --examples"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$remote"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --format)
            if [[ "$cmd" == "diff" ]]; then
                COMPREPLY=( $(compgen -W "ascii delta" -- "$cur") )
            else
                COMPREPLY=( $(compgen -W "json yaml" -- "$cur") )
            fi
            return 0
            ;;
    esac

    if [[ "$cmd" == "export" && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _todoctl todoctl
`

const zshCompletionScript = `#compdef todoctl

_todoctl() {
  local -a cmds
  cmds=(
    'ls:list items'
    'get:show one item'
    'add:create an item'
    'done:mark an item completed'
    'rm:delete an item'
    'tui:interactive todo list'
    'diff:compare the saved list with the current one'
    'export:write the list to a file, stdout or S3'
    'serve:run a local mock of the todo API'
    'completion:generate shell completion script'
  )

  local -a remote
  remote=(
  '(-u --url)'{-u,--url}'[base URL of the todo API]:url'
  '--token[bearer token]:token'
  '(-l --limit)'{-l,--limit}'[limit items, 0 for all]:limit'
  '--timeout[give up after]:duration'
  '--examples[show example usages]'
  '--tldr[show tldr page]'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'todoctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    ls)
      _arguments -C $remote $common '--schema[dump item schema]'
      ;;
    get|done|rm)
      _arguments -C $remote $common '--schema[dump item schema]' '1:id'
      ;;
    add)
      _arguments -C $remote $common '--schema[dump item schema]' '--completed[create completed]' '*:title'
      ;;
    tui)
      _arguments -C $remote '(-c --color)'{-c,--color}'[use colors]'
      ;;
    diff)
      _arguments -C $remote \
        '(-c --color)'{-c,--color}'[color the diff]' \
        '--format[diff format]:format:(ascii delta)' \
        '--save[save the current list]'
      ;;
    export)
      _arguments -C $remote \
        '--format[export format]:format:(json yaml)' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--endpoint[S3 endpoint]:url' \
        '1:destination:_files'
      ;;
    serve)
      _arguments -C '--addr[listen address]:addr' '--seed[sample items]:n' '--fail[failed writes]:n' '--examples[show example usages]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _todoctl todoctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(stderr(cmd), "usage: todoctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "todoctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
