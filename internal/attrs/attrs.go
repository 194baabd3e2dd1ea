// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// Default is the column set used when --attrs adds nothing.
const Default = "id,title,completed"

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the keys to be included in the output. These are
// the keys of the item JSON object, thus the name.
type Attr struct {
	// The JSON key to extract from the item object.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output. This will also be used as the column title
	// when output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the attr's spec to value. Supported spec letters:
//
//	l, L  lower case
//	u, U  upper case
//	y, Y  render a bool as a check mark
//	N     truncate to N runes; -N keeps both ends around ".."
func (a *Attr) Transform(value interface{}) interface{} {
	if b, ok := value.(bool); ok {
		if strings.ContainsAny(a.TransformSpec, "yY") {
			if b {
				return "✓"
			}
			return " "
		}
		return b
	}

	result, ok := value.(string)
	if !ok {
		return value
	}

	// The case letter appearing last wins. A global spec is prepended to each
	// attr's own spec, so --attrs '*::U,title::l' is lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	// Same logic as case: the last length wins.
	l, err := strconv.Atoi(match[len(match)-1])
	if err != nil {
		log.Debugf("ignoring length spec %q", match[len(match)-1])
		return result
	}
	runes := []rune(result)
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs {
		return result
	}
	if l >= 0 {
		return string(runes[:l])
	}
	side := abs/2 - 1
	if side < 1 {
		return string(runes[:abs])
	}
	return string(runes[:side]) + ".." + string(runes[len(runes)-side:])
}

type AttrList []Attr

// Return a string representation of the AttrList. This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the key to
	// extract from the JSON object. The second is the key to use in the output.
	// The third is the transformation spec to apply to the output value. The
	// latter two are optional and the output key defaults to the JSON key.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		// A leading ! keeps the attr for filtering and sorting only.
		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute in %q", value)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// or the user double-entered it) just apply the OutputKey, Include and
		// TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the spec of the "*" attr, if any, to every
// attr in the list.
func (alist *AttrList) SetGlobalTransformSpec() {
	spec := ""

	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}
}

// Included returns the attrs that appear in output, in order.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

func (a *AttrList) Type() string {
	return "list"
}
