/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/arubamgr/fwvalidate/pkg/errors"
	"github.com/arubamgr/fwvalidate/pkg/model"
)

// checkResultWire mirrors CheckResult with the detail left undecoded.
type checkResultWire[D any] struct {
	Stage    Stage            `json:"stage" yaml:"stage"`
	Passed   bool             `json:"passed" yaml:"passed"`
	Detail   D                `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
	Code      errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Direction model.Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
	Advisory  bool             `json:"advisory,omitempty" yaml:"advisory,omitempty"`
	Duration  time.Duration    `json:"duration" yaml:"duration"`
}

func (w checkResultWire[D]) result(detail Detail) CheckResult {
	return CheckResult{
		Stage:     w.Stage,
		Passed:    w.Passed,
		Detail:    detail,
		Error:     w.Error,
		Code:      w.Code,
		Direction: w.Direction,
		Advisory:  w.Advisory,
		Duration:  w.Duration,
	}
}

// decodeDetail decodes the detail variant that belongs to stage.
func decodeDetail(stage Stage, decode func(any) error) (Detail, error) {
	var (
		d   Detail
		err error
	)
	switch stage {
	case StageExistence:
		var v ExistenceDetail
		err = decode(&v)
		d = v
	case StageFilenameConvention:
		var v FilenameDetail
		err = decode(&v)
		d = v
	case StageFileSize:
		var v SizeDetail
		err = decode(&v)
		d = v
	case StageChecksum:
		var v ChecksumDetail
		err = decode(&v)
		d = v
	case StageVersionExtraction:
		var v VersionDetail
		err = decode(&v)
		d = v
	case StageModelCompatibility:
		var v ModelDetail
		err = decode(&v)
		d = v
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s detail: %w", stage, err)
	}
	return d, nil
}

// UnmarshalJSON decodes a CheckResult, selecting the detail type by stage.
func (r *CheckResult) UnmarshalJSON(b []byte) error {
	var w checkResultWire[json.RawMessage]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	var detail Detail
	if len(w.Detail) > 0 && string(w.Detail) != "null" {
		d, err := decodeDetail(w.Stage, func(v any) error { return json.Unmarshal(w.Detail, v) })
		if err != nil {
			return err
		}
		detail = d
	}

	*r = w.result(detail)
	return nil
}

// UnmarshalYAML decodes a CheckResult, selecting the detail type by stage.
func (r *CheckResult) UnmarshalYAML(node *yaml.Node) error {
	var w checkResultWire[yaml.Node]
	if err := node.Decode(&w); err != nil {
		return err
	}

	var detail Detail
	if !w.Detail.IsZero() && w.Detail.Tag != "!!null" {
		d, err := decodeDetail(w.Stage, w.Detail.Decode)
		if err != nil {
			return err
		}
		detail = d
	}

	*r = w.result(detail)
	return nil
}

// DecodeMsgpack decodes a CheckResult, selecting the detail type by stage.
// The decoder must use json struct tags, as the serializer configures it.
func (r *CheckResult) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w checkResultWire[msgpack.RawMessage]
	if err := dec.Decode(&w); err != nil {
		return err
	}

	var detail Detail
	if len(w.Detail) > 0 && !isMsgpackNil(w.Detail) {
		d, err := decodeDetail(w.Stage, func(v any) error {
			inner := msgpack.NewDecoder(bytes.NewReader(w.Detail))
			inner.SetCustomStructTag("json")
			return inner.Decode(v)
		})
		if err != nil {
			return err
		}
		detail = d
	}

	*r = w.result(detail)
	return nil
}

func isMsgpackNil(raw msgpack.RawMessage) bool {
	return len(raw) == 1 && raw[0] == 0xc0
}
