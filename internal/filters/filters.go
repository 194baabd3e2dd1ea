// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/todoctl/internal/attrs"
)

// ErrInvalidFilter reports a --filter entry without a supported operand.
var ErrInvalidFilter = errors.New("invalid filter")

// filterRegex splits key + operator + target. Operators are one of
// = ^ ~ < > @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter represents a single parsed --filter expression including the key,
// operand, optional negation and target value.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

func (f Filter) String() string {
	neg := ""
	if f.Negate {
		neg = "!"
	}
	return f.Key + neg + f.Operand + f.Target
}

func delimiter() string {
	if d, ok := os.LookupEnv("TODOCTL_FILTER_DELIM"); ok && d != "" {
		return d
	}
	return ","
}

// Parse is the strict form of BuildFilters: the first malformed entry is an
// error.
func Parse(spec string) ([]Filter, error) {
	if spec == "" {
		return nil, nil
	}

	filters := make([]Filter, 0, strings.Count(spec, delimiter())+1)
	for _, filterSpec := range strings.Split(spec, delimiter()) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filterSpec)
		}

		negate := strings.HasPrefix(parts[2], "!")
		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		})
	}
	return filters, nil
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	for _, filterSpec := range strings.Split(spec, delimiter()) {
		if filterSpec == "" {
			continue
		}
		f, err := Parse(filterSpec)
		if err != nil {
			log.Error(err.Error())
			continue
		}
		filters = append(filters, f...)
	}

	return filters
}

// FilterDataset returns the rows of candidates matching spec, each reduced to
// the attrs keyed by their OutputKey. Transforms are left to the output
// phase.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filteredResults []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		result := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			result[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		filteredResults = append(filteredResults, result)
	}

	return filteredResults
}

// applyFilters returns true if the candidate row matches all of the provided
// filters. A filter whose key names no attr is reported and ignored.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := ""
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key || attr.Key == filter.Key {
				key = attr.Key
				break
			}
		}

		if key == "" {
			log.Warnf("filter key not found: %s", filter.Key)
			continue
		}

		value := candidate.Get(key).Value()
		if value == nil {
			return false
		}

		result := true
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, filter)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			result = checkNumericOperand(v, filter)
		default:
			if filter.Operand == "@" {
				result = checkContainsOperand(value, filter)
			}
		}

		if !result {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Target {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Target]
		return found != filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares value against the target numerically. Only
// =, > and < apply; ids arrive as numbers from the public API.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
