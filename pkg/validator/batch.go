/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
	"github.com/arubamgr/fwvalidate/pkg/header"
)

// ValidateAll validates each path with its own pipeline, running up to
// concurrency pipelines at a time. Reports are returned in input order.
// Cancellation is observed between files only; a pipeline that has
// started always runs to completion.
func (v *Validator) ValidateAll(ctx context.Context, paths []string, targetModel string, concurrency int) (*BatchReport, error) {
	if concurrency < 1 {
		concurrency = defaults.BatchConcurrency
	}

	reports := make([]*Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = v.Validate(path, targetModel)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch validation interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch validation interrupted: %w", err)
	}

	batch := &BatchReport{Reports: reports}
	for _, r := range reports {
		if r.Summary.OverallPassed {
			batch.Passed++
		} else {
			batch.Failed++
		}
	}
	batch.Init(header.KindBatchReport, APIVersion, v.Version, v.now())

	v.logger.Info("batch validation completed",
		"files", len(paths),
		"passed", batch.Passed,
		"failed", batch.Failed)

	return batch, nil
}
