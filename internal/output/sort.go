// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"cmp"
	"sort"
	"strings"
)

type sortKey struct {
	name          string
	descending    bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		k := sortKey{}
		for len(part) > 0 && (part[0] == '-' || part[0] == '!') {
			if part[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			part = part[1:]
		}
		if part == "" {
			continue
		}
		k.name = part
		keys = append(keys, k)
	}
	return keys
}

// SortDataset orders rows in place by the comma separated keys in spec. A
// leading - sorts that key descending and a leading ! compares strings case
// sensitively. Missing values sort first. The sort is stable.
func SortDataset(rows []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(rows[i][k.name], rows[j][k.name], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(boolInt(av), boolInt(bv))
		}
	case string:
		if bv, ok := b.(string); ok {
			if !caseSensitive {
				av, bv = strings.ToLower(av), strings.ToLower(bv)
			}
			return strings.Compare(av, bv)
		}
	}

	return strings.Compare(InterfaceToString(a), InterfaceToString(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
