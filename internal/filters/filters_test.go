// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/todoctl/internal/attrs"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{name: "empty spec", spec: ""},
		{
			name: "exact match",
			spec: "title=buy milk",
			want: []Filter{{Key: "title", Operand: "=", Target: "buy milk"}},
		},
		{
			name: "negated exact match",
			spec: "completed!=true",
			want: []Filter{{Key: "completed", Operand: "=", Target: "true", Negate: true}},
		},
		{
			name: "prefix and numeric",
			spec: "title^buy,id>5",
			want: []Filter{
				{Key: "title", Operand: "^", Target: "buy"},
				{Key: "id", Operand: ">", Target: "5"},
			},
		},
		{
			name: "regex operand",
			spec: "title/^(buy|pay) ",
			want: []Filter{{Key: "title", Operand: "/", Target: "^(buy|pay) "}},
		},
		{
			name: "invalid filter skipped",
			spec: "title=abc,garbage,id<3",
			want: []Filter{
				{Key: "title", Operand: "=", Target: "abc"},
				{Key: "id", Operand: "<", Target: "3"},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "title@a,b|completed=false",
			delimiter: "|",
			want: []Filter{
				{Key: "title", Operand: "@", Target: "a,b"},
				{Key: "completed", Operand: "=", Target: "false"},
			},
		},
		{
			name: "empty target",
			spec: "title=",
			want: []Filter{{Key: "title", Operand: "=", Target: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv("TODOCTL_FILTER_DELIM", tt.delimiter)
			}

			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("title~BUY MILK,completed=false")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "title~BUY MILK", got[0].String())

	_, err = Parse("title=abc,nope")
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = Parse("=abc")
	assert.ErrorIs(t, err, ErrInvalidFilter)

	got, err = Parse("")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		filter Filter
		want   bool
	}{
		{"equals", "buy milk", Filter{Operand: "=", Target: "buy milk"}, true},
		{"not equals", "buy milk", Filter{Operand: "=", Target: "buy milk", Negate: true}, false},
		{"fold", "Buy Milk", Filter{Operand: "~", Target: "buy milk"}, true},
		{"prefix", "buy milk", Filter{Operand: "^", Target: "buy"}, true},
		{"not prefix", "buy milk", Filter{Operand: "^", Target: "buy", Negate: true}, false},
		{"greater", "walk dog", Filter{Operand: ">", Target: "buy"}, true},
		{"less", "walk dog", Filter{Operand: "<", Target: "buy"}, false},
		{"contains", "buy milk", Filter{Operand: "@", Target: "mil"}, true},
		{"regex", "pay rent", Filter{Operand: "/", Target: "^(buy|pay) "}, true},
		{"bad regex", "pay rent", Filter{Operand: "/", Target: "("}, false},
		{"unknown operand", "pay rent", Filter{Operand: "%", Target: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		filter Filter
		want   bool
	}{
		{"equals", 5, Filter{Operand: "=", Target: "5"}, true},
		{"not equals", 5, Filter{Operand: "=", Target: "5", Negate: true}, false},
		{"greater", 10, Filter{Operand: ">", Target: "9"}, true},
		{"numeric not lexical", 10, Filter{Operand: ">", Target: "9"}, true},
		{"less", 3, Filter{Operand: "<", Target: "3"}, false},
		{"prefix falls back to string", 12, Filter{Operand: "^", Target: "1"}, true},
		{"non numeric target", 12, Filter{Operand: "=", Target: "twelve"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkNumericOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	assert.True(t, checkContainsOperand([]any{"home", "work"}, Filter{Operand: "@", Target: "work"}))
	assert.False(t, checkContainsOperand([]any{"home"}, Filter{Operand: "@", Target: "work"}))
	assert.True(t, checkContainsOperand([]any{"home"}, Filter{Operand: "@", Target: "work", Negate: true}))
	assert.True(t, checkContainsOperand(map[string]any{"k": 1}, Filter{Operand: "@", Target: "k"}))
	assert.False(t, checkContainsOperand(map[string]any{"k": 1}, Filter{Operand: "@", Target: "k", Negate: true}))
	assert.False(t, checkContainsOperand(42, Filter{Operand: "@", Target: "4"}))
}

var itemAttrs = attrs.AttrList{
	{Key: "id", OutputKey: "id", Include: true},
	{Key: "title", OutputKey: "name", Include: true},
	{Key: "completed", OutputKey: "completed", Include: true},
	{Key: "tags", OutputKey: "tags", Include: false},
}

func TestApplyFilters(t *testing.T) {
	row := gjson.Parse(`{"userId":1,"id":7,"title":"buy milk","completed":false,"tags":["home"],"note":null}`)

	tests := []struct {
		name    string
		filters []Filter
		want    bool
	}{
		{name: "no filters", want: true},
		{name: "by output key", filters: []Filter{{Key: "name", Operand: "=", Target: "buy milk"}}, want: true},
		{name: "by json key", filters: []Filter{{Key: "title", Operand: "^", Target: "buy"}}, want: true},
		{name: "bool", filters: []Filter{{Key: "completed", Operand: "=", Target: "false"}}, want: true},
		{name: "bool mismatch", filters: []Filter{{Key: "completed", Operand: "=", Target: "true"}}, want: false},
		{name: "numeric id", filters: []Filter{{Key: "id", Operand: ">", Target: "5"}}, want: true},
		{name: "hidden attr still filters", filters: []Filter{{Key: "tags", Operand: "@", Target: "home"}}, want: true},
		{name: "unknown key ignored", filters: []Filter{{Key: "nope", Operand: "=", Target: "x"}}, want: true},
		{
			name: "one of two fails",
			filters: []Filter{
				{Key: "name", Operand: "@", Target: "milk"},
				{Key: "id", Operand: "<", Target: "5"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyFilters(row, itemAttrs, tt.filters))
		})
	}
}

func TestApplyFilters_MissingValue(t *testing.T) {
	row := gjson.Parse(`{"id":"1"}`)
	assert.False(t, applyFilters(row, itemAttrs, []Filter{{Key: "name", Operand: "=", Target: "x"}}))
}

func TestFilterDataset(t *testing.T) {
	data := gjson.Parse(`[
		{"id":"1","title":"buy milk","completed":false},
		{"id":"2","title":"walk dog","completed":true},
		{"id":"3","title":"buy bread","completed":true}
	]`)

	tests := []struct {
		name      string
		spec      string
		wantNames []string
	}{
		{name: "no filters", spec: "", wantNames: []string{"buy milk", "walk dog", "buy bread"}},
		{name: "prefix", spec: "name^buy", wantNames: []string{"buy milk", "buy bread"}},
		{name: "completed", spec: "completed=true", wantNames: []string{"walk dog", "buy bread"}},
		{name: "combined", spec: "completed=true,name^buy", wantNames: []string{"buy bread"}},
		{name: "no matches", spec: "name=nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(data, itemAttrs, tt.spec)
			require.Len(t, got, len(tt.wantNames))
			for i, want := range tt.wantNames {
				assert.Equal(t, want, got[i]["name"])
				assert.Contains(t, got[i], "id")
				assert.Contains(t, got[i], "completed")
			}
		})
	}
}
