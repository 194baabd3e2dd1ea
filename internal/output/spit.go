// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/todoctl/internal/attrs"
	"github.com/staranto/todoctl/internal/config"
	"github.com/staranto/todoctl/internal/filters"
)

// ErrInvalidDocument is returned when the dataset is not valid JSON.
var ErrInvalidDocument = errors.New("invalid JSON document")

// Options are the result shaping flags shared by the listing commands.
type Options struct {
	Output string
	Filter string
	Sort   string
	Titles bool
	Color  bool
}

// OptionsFromCommand reads Options from cmd's flags.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// SliceDiceSpit filters, transforms, sorts and renders raw, a JSON array of
// items, to w according to cmd's flags.
func SliceDiceSpit(raw bytes.Buffer, attrs attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	return Emit(raw, attrs, OptionsFromCommand(cmd), w)
}

// Emit is SliceDiceSpit with explicit options.
func Emit(raw bytes.Buffer, attrs attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	if !gjson.Valid(raw.String()) {
		return ErrInvalidDocument
	}

	// Work on a copy so the global spec is applied once per call.
	attrs = append(attrs[:0:0], attrs...)
	attrs.SetGlobalTransformSpec()
	dataset := filters.FilterDataset(gjson.Parse(raw.String()), attrs, opts.Filter)

	for _, row := range dataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(dataset, opts.Sort)

	included := attrs.Included()
	switch opts.Output {
	case "json":
		out := make([]map[string]interface{}, 0, len(dataset))
		for _, row := range dataset {
			keep := make(map[string]interface{}, len(included))
			for _, attr := range included {
				keep[attr.OutputKey] = row[attr.OutputKey]
			}
			out = append(out, keep)
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		out := make([]yaml.MapSlice, 0, len(dataset))
		for _, row := range dataset {
			keep := make(yaml.MapSlice, 0, len(included))
			for _, attr := range included {
				keep = append(keep, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
			}
			out = append(out, keep)
		}
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		TableWriter(dataset, included, opts, w)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", opts.Output)
	}
}

// TableWriter renders the result set in a tabular form honoring color and
// titles options. Config keys padding and colors.{title,even,odd} tune it.
func TableWriter(resultSet []map[string]interface{}, attrs attrs.AttrList, opts Options, w io.Writer) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	rows := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	rows := make([][]string, 0, len(examples))
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided. Booleans are always
// rendered.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if b, ok := value.(bool); ok {
		return strconv.FormatBool(b)
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
