// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	MinTitleLen = 3
	MaxTitleLen = 20
)

// Item is a single todo record.
type Item struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Candidate is the unvalidated input used to build an Item. ID and Completed
// are optional.
type Candidate struct {
	ID        string
	Title     string
	Completed *bool
}

// New returns a Candidate carrying only a title.
func New(title string) Candidate {
	return Candidate{Title: title}
}

// ErrValidation is the sentinel matched by every ValidationError.
var ErrValidation = errors.New("invalid item")

// ValidationError reports a candidate that does not satisfy the item schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewID generates identifiers for candidates that arrive without one.
var NewID = func() string {
	return uuid.NewString()
}

//go:embed item.schema.json
var schemaDoc []byte

// Schema returns the JSON schema items are validated against.
func Schema() []byte {
	return append([]byte(nil), schemaDoc...)
}

const schemaURL = "https://todoctl.local/schemas/item.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaDoc)); err != nil {
			schemaErr = fmt.Errorf("failed to load item schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate checks c against the item schema and returns the normalized Item.
// A missing ID is generated and a missing Completed defaults to false.
func Validate(c Candidate) (Item, error) {
	s, err := compiled()
	if err != nil {
		return Item{}, err
	}

	doc := map[string]interface{}{
		"title": c.Title,
	}
	if c.ID != "" {
		doc["id"] = c.ID
	}
	if c.Completed != nil {
		doc["completed"] = *c.Completed
	}

	if err := s.Validate(doc); err != nil {
		log.Debugf("candidate rejected: %v", err)
		return Item{}, toValidationError(err)
	}

	it := Item{
		ID:    c.ID,
		Title: c.Title,
	}
	if it.ID == "" {
		it.ID = NewID()
	}
	if c.Completed != nil {
		it.Completed = *c.Completed
	}
	return it, nil
}

// toValidationError reduces a schema failure to its first leaf cause.
func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Field:   strings.TrimPrefix(ve.InstanceLocation, "/"),
		Message: ve.Message,
	}
}
