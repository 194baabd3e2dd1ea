// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dto maps between the remote API's JSON documents and item.Item.
package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/staranto/todoctl/internal/item"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON document")
	ErrNotObject   = errors.New("not a JSON object")
	ErrNotArray    = errors.New("not a JSON array")
	ErrMissingID   = errors.New("missing id")
)

// wire is the document shape sent to the API.
type wire struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// FromAPI decodes a single API object. The id may arrive as a JSON number or
// a string; unknown fields such as userId are ignored.
func FromAPI(raw []byte) (item.Item, error) {
	if !gjson.ValidBytes(raw) {
		return item.Item{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(raw))
}

// ListFromAPI decodes an API array.
func ListFromAPI(raw []byte) ([]item.Item, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	elems := doc.Array()
	items := make([]item.Item, 0, len(elems))
	for i, e := range elems {
		it, err := fromResult(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func fromResult(r gjson.Result) (item.Item, error) {
	if !r.IsObject() {
		return item.Item{}, ErrNotObject
	}
	id := r.Get("id")
	if !id.Exists() || id.String() == "" {
		return item.Item{}, ErrMissingID
	}
	return item.Item{
		ID:        id.String(),
		Title:     r.Get("title").String(),
		Completed: r.Get("completed").Bool(),
	}, nil
}

// ToAPI encodes it for a create request.
func ToAPI(it item.Item) ([]byte, error) {
	return json.Marshal(wire(it))
}

// CompletePatch is the body of the complete request. Completion is one-way so
// the flag is always true.
func CompletePatch() []byte {
	return []byte(`{"completed":true}`)
}
