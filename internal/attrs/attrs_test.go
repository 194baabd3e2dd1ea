// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) AttrList {
	t.Helper()
	var a AttrList
	require.NoError(t, a.Set(Default))
	return a
}

func TestAttrList_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    AttrList
		wantErr bool
	}{
		{
			name:  "empty adds nothing",
			value: "",
			want: AttrList{
				{Key: "id", Include: true, OutputKey: "id"},
				{Key: "title", Include: true, OutputKey: "title"},
				{Key: "completed", Include: true, OutputKey: "completed"},
			},
		},
		{
			name:  "rename existing",
			value: "completed:done",
			want: AttrList{
				{Key: "id", Include: true, OutputKey: "id"},
				{Key: "title", Include: true, OutputKey: "title"},
				{Key: "completed", Include: true, OutputKey: "done"},
			},
		},
		{
			name:  "hide and transform",
			value: "!id,title::U",
			want: AttrList{
				{Key: "id", Include: false, OutputKey: "id"},
				{Key: "title", Include: true, OutputKey: "title", TransformSpec: "U"},
				{Key: "completed", Include: true, OutputKey: "completed"},
			},
		},
		{
			name:  "append new key",
			value: "userId:user",
			want: AttrList{
				{Key: "id", Include: true, OutputKey: "id"},
				{Key: "title", Include: true, OutputKey: "title"},
				{Key: "completed", Include: true, OutputKey: "completed"},
				{Key: "userId", Include: true, OutputKey: "user"},
			},
		},
		{
			name:  "global spec",
			value: "*::l",
			want: AttrList{
				{Key: "id", Include: true, OutputKey: "id"},
				{Key: "title", Include: true, OutputKey: "title"},
				{Key: "completed", Include: true, OutputKey: "completed"},
				{Key: "*", Include: false, OutputKey: "*", TransformSpec: "l"},
			},
		},
		{
			name:    "empty key",
			value:   "title,,id",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := defaults(t)
			err := a.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	a := defaults(t)
	require.NoError(t, a.Set("*::U,title::l"))
	a.SetGlobalTransformSpec()

	assert.Equal(t, "U,", a[0].TransformSpec)
	assert.Equal(t, "U,l", a[1].TransformSpec)
	assert.Equal(t, "lower", a[1].Transform("LoWeR"), "attr spec overrides global")
	assert.Equal(t, "ABC", a[0].Transform("abc"))
}

func TestAttr_Transform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		input interface{}
		want  interface{}
	}{
		{name: "no spec", spec: "", input: "Buy Milk", want: "Buy Milk"},
		{name: "lower", spec: "l", input: "Buy Milk", want: "buy milk"},
		{name: "upper", spec: "U", input: "Buy Milk", want: "BUY MILK"},
		{name: "last case wins", spec: "u,l", input: "Buy Milk", want: "buy milk"},
		{name: "truncate", spec: "3", input: "Buy Milk", want: "Buy"},
		{name: "truncate runes", spec: "2", input: "żółw", want: "żó"},
		{name: "short enough", spec: "20", input: "Buy Milk", want: "Buy Milk"},
		{name: "middle", spec: "-10", input: "abcdefghijklmnop", want: "abcd..mnop"},
		{name: "last length wins", spec: "2,4", input: "abcdef", want: "abcd"},
		{name: "check mark true", spec: "y", input: true, want: "✓"},
		{name: "check mark false", spec: "y", input: false, want: " "},
		{name: "bool untouched", spec: "U", input: true, want: true},
		{name: "number untouched", spec: "3", input: 12345.0, want: 12345.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attr{TransformSpec: tt.spec}
			assert.Equal(t, tt.want, a.Transform(tt.input))
		})
	}
}

func TestAttrList_String(t *testing.T) {
	a := defaults(t)
	require.NoError(t, a.Set("title:name:U"))
	assert.Equal(t, "id:id:,title:name:U,completed:completed:", a.String())
}

func TestAttrList_Included(t *testing.T) {
	a := defaults(t)
	require.NoError(t, a.Set("!completed,*::l"))

	got := a.Included()
	require.Len(t, got, 2)
	assert.Equal(t, "id", got[0].Key)
	assert.Equal(t, "title", got[1].Key)
}

func TestAttrList_Type(t *testing.T) {
	var a AttrList
	assert.Equal(t, "list", a.Type())
}
