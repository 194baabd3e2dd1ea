// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/todoctl/internal/aws"
	"github.com/staranto/todoctl/internal/item"
	"github.com/staranto/todoctl/internal/meta"
)

var exportExamples = [][2]string{
	{"todoctl export todos.json", "write the list to a json file"},
	{"todoctl export --limit 0 todos.yaml", "the whole list as yaml"},
	{"todoctl export s3://bucket/todos.json", "upload to S3 with the shell's AWS setup"},
	{"todoctl export - --format yaml", "yaml to stdout"},
}

// ExportCommandAction writes the refreshed list to a file, stdout or S3.
func ExportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "export") || ShowExamplesIfRequested(cmd, exportExamples) {
		return nil
	}

	dest := cmd.Args().First()
	if dest == "" {
		return fmt.Errorf("a destination is required")
	}

	format := exportFormat(dest, cmd.String("format"))
	a, ctx, cancel, err := NewApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cancel()

	if err := a.Load(ctx); err != nil {
		return err
	}

	data, err := EncodeItems(a.Controller.Items(), format)
	if err != nil {
		return err
	}

	switch {
	case dest == "-":
		_, err = stdout(cmd).Write(data)
		return err
	case strings.HasPrefix(dest, "s3://"):
		err = exportS3(ctx, cmd, dest, format, data)
	default:
		if !filepath.IsAbs(dest) && m.StartingDir != "" {
			dest = filepath.Join(m.StartingDir, dest)
		}
		if err = os.WriteFile(dest, data, 0o644); err != nil { //nolint:mnd
			err = fmt.Errorf("failed to write %s: %w", dest, err)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr(cmd), "wrote %s to %s\n", humanize.Bytes(uint64(len(data))), dest)
	return nil
}

func exportS3(ctx context.Context, cmd *cli.Command, dest, format string, data []byte) error {
	bucket, key, err := aws.ParseS3URL(dest)
	if err != nil {
		return err
	}

	cfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	var opts []func(*s3v2.Options)
	if ep := cmd.String("endpoint"); ep != "" {
		opts = append(opts, aws.WithEndpoint(ep))
	}

	return aws.Upload(ctx, aws.NewS3(cfg, opts...), bucket, key, contentTypes[format], data)
}

var contentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/yaml",
}

// exportFormat returns flag when set, else guesses from dest's extension.
func exportFormat(dest, flag string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// EncodeItems renders items as an indented json array or a yaml list.
func EncodeItems(items []item.Item, format string) ([]byte, error) {
	if items == nil {
		items = []item.Item{}
	}
	switch format {
	case "yaml":
		b, err := yaml.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return b, nil
	case "", "json":
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(b, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ExportCommandBuilder constructs the cli.Command for "export".
func ExportCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return (&ItemCommandBuilder{
		Name:      "export",
		Usage:     "write the list to a file, stdout or S3",
		UsageText: "todoctl export <file|-|s3://bucket/key> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "json or yaml, guessed from the destination when unset",
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			},
			NameSpacedValueChainFlagFromConfigFile("export", src, &cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS shared config profile",
				Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
			}),
			NameSpacedValueChainFlagFromConfigFile("export", src, &cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region",
				Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
			}),
			NameSpacedValueChainFlagFromConfigFile("export", src, &cli.StringFlag{
				Name:    "endpoint",
				Usage:   "S3-compatible endpoint, such as a MinIO server",
				Sources: cli.NewValueSourceChain(cli.EnvVar("TODOCTL_S3_ENDPOINT")),
			}),
		},
		NoOutput: true,
		Action:   ExportCommandAction,
		Meta:     meta,
	}).Build()
}
