/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/arubamgr/fwvalidate/pkg/digest"
	"github.com/arubamgr/fwvalidate/pkg/header"
)

// Checksum runs only the existence check and the digest computation on path.
// It returns a NOT_FOUND error if path is not a regular file and IO_ERROR if
// reading fails. An empty algorithm selects the validator's configured one.
func (v *Validator) Checksum(path string, a digest.Algorithm) (*ChecksumResult, error) {
	if a == "" {
		a = v.algorithm
	}

	if _, err := statFile(path); err != nil {
		v.logger.Error("checksum failed", "path", path, "error", err)
		return nil, err
	}

	sum, err := digest.File(path, a)
	if err != nil {
		v.logger.Error("checksum failed", "path", path, "algorithm", a, "error", err)
		return nil, err
	}

	v.logger.Debug("checksum computed", "path", path, "algorithm", a, "bytes", sum.Bytes)

	res := &ChecksumResult{
		File:      path,
		Algorithm: sum.Algorithm,
		Checksum:  sum.Hex,
	}
	res.Init(header.KindChecksumResult, APIVersion, v.Version, v.now())
	return res, nil
}
