/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package model holds the switch model compatibility table: the accepted
// firmware image size envelope for each supported AOS-CX hardware model.
//
// The table is ordered. Model inference scans the table in order and the
// first model id found in the filename wins, so the order is part of the
// contract.
package model

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/arubamgr/fwvalidate/pkg/errors"
)

// Direction tells which side of an envelope a size fell out of.
type Direction string

const (
	DirectionTooSmall Direction = "too small"
	DirectionTooLarge Direction = "too large"
)

// Constraint is the accepted image size envelope for one model, in megabytes.
// Both bounds are inclusive.
type Constraint struct {
	Model string  `json:"model" yaml:"model"`
	MinMB float64 `json:"minMB" yaml:"minMB"`
	MaxMB float64 `json:"maxMB" yaml:"maxMB"`
}

// Contains reports whether sizeMB lies within the envelope.
func (c Constraint) Contains(sizeMB float64) bool {
	return sizeMB >= c.MinMB && sizeMB <= c.MaxMB
}

// defaultConstraints is never handed out directly; DefaultTable copies it.
var defaultConstraints = []Constraint{
	{Model: "6100", MinMB: 400, MaxMB: 800},
	{Model: "6200", MinMB: 450, MaxMB: 900},
	{Model: "6300", MinMB: 500, MaxMB: 1000},
	{Model: "6400", MinMB: 600, MaxMB: 1200},
	{Model: "8320", MinMB: 700, MaxMB: 1500},
	{Model: "8325", MinMB: 700, MaxMB: 1500},
	{Model: "8400", MinMB: 800, MaxMB: 2000},
}

// Table is an ordered, read-only set of model constraints.
type Table struct {
	constraints []Constraint
}

// NewTable creates a table from constraints, preserving their order.
// Model ids must be non-empty and unique and bounds must satisfy 0 <= min <= max.
func NewTable(constraints ...Constraint) (*Table, error) {
	seen := make(map[string]struct{}, len(constraints))
	for _, c := range constraints {
		if c.Model == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest, "model id cannot be empty")
		}
		if _, dup := seen[c.Model]; dup {
			return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("duplicate model id %q", c.Model))
		}
		if c.MinMB < 0 || c.MinMB > c.MaxMB {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid size range for model %q: [%v, %v]", c.Model, c.MinMB, c.MaxMB))
		}
		seen[c.Model] = struct{}{}
	}

	t := &Table{constraints: make([]Constraint, len(constraints))}
	copy(t.constraints, constraints)
	return t, nil
}

// DefaultTable returns the built-in AOS-CX compatibility table.
func DefaultTable() *Table {
	t := &Table{constraints: make([]Constraint, len(defaultConstraints))}
	copy(t.constraints, defaultConstraints)
	return t
}

// Constraints returns a copy of the table rows in order.
func (t *Table) Constraints() []Constraint {
	out := make([]Constraint, len(t.constraints))
	copy(out, t.constraints)
	return out
}

// IDs returns the model ids in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.constraints))
	for i, c := range t.constraints {
		ids[i] = c.Model
	}
	return ids
}

// Lookup returns the constraint for id.
func (t *Table) Lookup(id string) (Constraint, bool) {
	for _, c := range t.constraints {
		if c.Model == id {
			return c, true
		}
	}
	return Constraint{}, false
}

// Infer returns the first model id, in table order, that appears as a
// substring of filename.
func (t *Table) Infer(filename string) (string, bool) {
	for _, c := range t.constraints {
		if strings.Contains(filename, c.Model) {
			return c.Model, true
		}
	}
	return "", false
}

// Suggest returns the known model id closest to id by edit distance.
// Returns false if the table is empty.
func (t *Table) Suggest(id string) (string, bool) {
	best, bestDist := "", math.MaxInt
	for _, c := range t.constraints {
		if d := levenshtein.ComputeDistance(id, c.Model); d < bestDist {
			best, bestDist = c.Model, d
		}
	}
	return best, best != ""
}

// UnsupportedError returns the UNSUPPORTED_MODEL error for id, with a
// suggestion when one is available.
func (t *Table) UnsupportedError(id string) error {
	msg := fmt.Sprintf("unsupported model: %s", id)
	if s, ok := t.Suggest(id); ok {
		msg = fmt.Sprintf("%s (did you mean %s? supported values: %v)", msg, s, t.IDs())
	}
	return errors.WithContext(errors.ErrCodeUnsupportedModel, msg, map[string]any{"model": id})
}

// Check verifies sizeMB against the envelope of model id.
// It returns UNSUPPORTED_MODEL if id is not in the table and
// SIZE_OUT_OF_RANGE if the size falls outside the envelope.
func (t *Table) Check(id string, sizeMB float64) error {
	c, ok := t.Lookup(id)
	if !ok {
		return t.UnsupportedError(id)
	}

	switch {
	case sizeMB < c.MinMB:
		return SizeError(DirectionTooSmall,
			fmt.Sprintf("file too small for %s: %.1fMB (min: %gMB)", id, sizeMB, c.MinMB))
	case sizeMB > c.MaxMB:
		return SizeError(DirectionTooLarge,
			fmt.Sprintf("file too large for %s: %.1fMB (max: %gMB)", id, sizeMB, c.MaxMB))
	}
	return nil
}

// SizeError builds a SIZE_OUT_OF_RANGE error tagged with its direction.
func SizeError(dir Direction, message string) error {
	return errors.WithContext(errors.ErrCodeSizeOutOfRange, message, map[string]any{"direction": string(dir)})
}

// DirectionOf returns the direction recorded on a SIZE_OUT_OF_RANGE error.
func DirectionOf(err error) (Direction, bool) {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) || se.Code != errors.ErrCodeSizeOutOfRange {
		return "", false
	}
	d, ok := se.Context["direction"].(string)
	return Direction(d), ok
}
