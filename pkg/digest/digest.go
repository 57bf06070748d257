/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package digest computes integrity digests of firmware images.
//
// Files are streamed through the hash in fixed-size chunks, so memory use is
// independent of image size:
//
//	sum, err := digest.File("/srv/firmware/ArubaOS-CX_6200_10_13_1000.swi", digest.SHA256)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum.Hex)
package digest

import (
	"crypto/md5"  //nolint:gosec // MD5 used for checksum verification, not security
	"crypto/sha1" //nolint:gosec // SHA1 used for checksum verification, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/arubamgr/fwvalidate/pkg/defaults"
	"github.com/arubamgr/fwvalidate/pkg/errors"
)

// Algorithm names a supported hash algorithm.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	SHA1   Algorithm = "sha1"
	MD5    Algorithm = "md5"
	CRC32  Algorithm = "crc32"
	XXHash Algorithm = "xxhash"

	// Default is the algorithm used when none is specified.
	Default = SHA256
)

// SupportedAlgorithms returns all supported algorithms, default first.
func SupportedAlgorithms() []Algorithm {
	return []Algorithm{SHA256, SHA512, SHA1, MD5, CRC32, XXHash}
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// IsValid reports whether a is a supported algorithm.
func (a Algorithm) IsValid() bool {
	for _, s := range SupportedAlgorithms() {
		if a == s {
			return true
		}
	}
	return false
}

// ParseAlgorithm parses an algorithm name. Matching is case-insensitive and
// ignores dashes, so "SHA-256" parses as SHA256. An empty string yields Default.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return Default, nil
	}
	a := Algorithm(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", ""))
	if !a.IsValid() {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported checksum algorithm %q, supported values: %v", s, SupportedAlgorithms()))
	}
	return a, nil
}

// NewHasher creates a new hash.Hash for the given algorithm.
func NewHasher(a Algorithm) (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA1:
		return sha1.New(), nil //nolint:gosec // SHA1 used for checksum verification, not security
	case MD5:
		return md5.New(), nil //nolint:gosec // MD5 used for checksum verification, not security
	case CRC32:
		return crc32.NewIEEE(), nil
	case XXHash:
		return xxhash.New(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported checksum algorithm: %s", a))
	}
}

// Sum is a computed digest.
type Sum struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Hex       string    `json:"checksum" yaml:"checksum"`
	Bytes     int64     `json:"bytes" yaml:"bytes"`
}

// Reader streams r through the hash and returns the digest.
func Reader(r io.Reader, a Algorithm) (Sum, error) {
	h, err := NewHasher(a)
	if err != nil {
		return Sum{}, err
	}

	buf := make([]byte, defaults.DigestChunkSize)
	n, err := io.CopyBuffer(h, r, buf)
	if err != nil {
		return Sum{}, errors.Wrap(errors.ErrCodeIO, "failed to calculate checksum", err)
	}

	return Sum{
		Algorithm: a,
		Hex:       hex.EncodeToString(h.Sum(nil)),
		Bytes:     n,
	}, nil
}

// File opens path read-only and returns the digest of its full contents.
func File(path string, a Algorithm) (Sum, error) {
	if _, err := NewHasher(a); err != nil {
		return Sum{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Sum{}, errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	return Reader(onlyReader{f}, a)
}

// onlyReader hides *os.File's WriterTo/ReaderFrom so io.CopyBuffer honors
// the fixed chunk size.
type onlyReader struct {
	io.Reader
}
