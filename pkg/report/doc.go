/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders validation reports for people: a plain-text
// summary for terminals and a single-page PDF certificate for change records.
//
// Machine-readable renderings (json, yaml, table, msgpack) live in the
// serializer package.
package report
