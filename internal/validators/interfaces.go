// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks published sync artifacts before they are
// allowed to touch local state.
//
// Every artifact that crosses a process boundary goes through a
// [Validator] first, whether it was fetched over HTTP or read from
// disk. A malformed artifact is rejected with a typed error and
// treated like a failed fetch; nothing is silently defaulted or
// partially applied.
package validators

import "context"

// Validator checks one value. The optional field names narrow the
// check to parts of a larger structure, so a caller can validate a
// manifest header without touching its version list.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
