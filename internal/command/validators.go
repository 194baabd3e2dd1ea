// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/todoctl/internal/filters"
)

var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}

// GlobalFlagsValidator checks flag combinations that no single flag validator
// can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Int("limit") < 0 {
		return errors.New("--limit must not be negative")
	}
	if c.Duration("timeout") < 0 {
		return errors.New("--timeout must not be negative")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// FilterValidator rejects filter specs that would otherwise be skipped
// silently.
func FilterValidator(value any) error {
	_, err := filters.Parse(value.(string))
	return err
}

func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}
	return nil
}

// FormatValidator accepts the export formats.
func FormatValidator(value any) error {
	switch value.(string) {
	case "", "json", "yaml":
		return nil
	}
	return errors.New("must be json or yaml")
}
